package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN" default:"" validate:"required_if=Enabled true"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" default:"4" validate:"gte=0"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" default:"2" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" default:"30m"`

	// Enabled is derived from StoreConfig.Backend, never read from env.
	Enabled bool `env:"-"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" default:"localhost:6379" validate:"required_if=Enabled true"`
	Password  string `env:"REDIS_PASSWORD" default:""`
	DB        int    `env:"REDIS_DB" default:"0" validate:"gte=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" default:"billionspend:"`

	Enabled bool `env:"-"`
}

type StoreConfig struct {
	Backend        string        `env:"STORE_BACKEND" default:"memory" validate:"oneof=memory postgres redis"`
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT" default:"3s" validate:"gt=0"`
	Postgres       PostgresConfig
	Redis          RedisConfig
}

type GameConfig struct {
	ShakeThreshold float64       `env:"SHAKE_THRESHOLD" default:"15" validate:"gt=0"`
	ShakeCooldown  time.Duration `env:"SHAKE_COOLDOWN" default:"1s" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the validate tags of cfg. Backend-specific sections are
// only required when that backend is selected.
func Validate(cfg any) error {
	if sc, ok := cfg.(*StoreConfig); ok {
		sc.Postgres.Enabled = sc.Backend == BackendPostgres
		sc.Redis.Enabled = sc.Backend == BackendRedis
	}

	err := validate.Struct(cfg)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q", fe.Namespace(), fe.Tag())
		}

		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}
