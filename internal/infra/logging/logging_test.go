package logging

import (
	"bytes"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewJSON(&buf, slog.LevelInfo, "billionspend-api")

	logger.Debug("hidden")
	logger.Info("state saved", "key", "@gameState")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())

	assert.Equal(t, "state saved", rec["msg"])
	assert.Equal(t, "billionspend-api", rec["service"])
	assert.Equal(t, "@gameState", rec["key"])
	assert.NotContains(t, rec, "source")
}

func TestNewJSON_DebugAddsSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	NewJSON(&buf, slog.LevelDebug, "migrator").Debug("visible")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())

	assert.Contains(t, rec, "source")
}
