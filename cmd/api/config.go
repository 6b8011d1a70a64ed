package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/fastprodman/billionspend/internal/config"
	"github.com/fastprodman/billionspend/pkg/envconf"
)

type apiConfig struct {
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	Port            uint16        `env:"HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
	Store           config.StoreConfig
	Game            config.GameConfig
}

// readConfig loads .env files when present, then the environment.
func readConfig(envFiles ...string) (*apiConfig, error) {
	for _, f := range envFiles {
		// a missing file is fine, real environments set variables directly
		_ = godotenv.Load(f)
	}

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	err = config.Validate(&cfg.Store)
	if err != nil {
		return nil, err
	}

	err = config.Validate(&cfg.Game)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
