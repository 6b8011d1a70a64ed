package logging

import (
	"io"
	"log/slog"
	"os"
)

// SetupJSON makes a JSON logger on stdout the slog default. Every record
// carries the service name; at debug level the source position is added too.
func SetupJSON(level slog.Level, service string) {
	slog.SetDefault(NewJSON(os.Stdout, level, service))
}

func NewJSON(w io.Writer, level slog.Level, service string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})

	return slog.New(h).With("service", service)
}
