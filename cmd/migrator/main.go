package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/fastprodman/billionspend/internal/infra/logging"
	"github.com/fastprodman/billionspend/pkg/envconf"
)

//go:embed migrations/*.sql
var baseFS embed.FS

//go:embed test_data/*.sql
var devFS embed.FS

const (
	directionDown = "down"

	// seed migrations keep their own version table so they never collide
	// with the schema versions
	devMigrationsTable = "schema_migrations_dev"
)

type migratorConfig struct {
	DSN       string     `env:"PG_DSN" validate:"required"`
	LogLevel  slog.Level `env:"APP_LOG_LEVEL" default:"INFO"`
	AppEnv    string     `env:"APP_ENV" default:"PROD" validate:"oneof=DEV PROD"`
	Direction string     `env:"MIGRATE_DIRECTION" default:"up" validate:"oneof=up down"`
}

// migrationSet is one embedded directory applied with its own version table.
type migrationSet struct {
	name  string
	fsys  fs.FS
	dir   string
	table string
}

func main() {
	err := migrateAll()
	if err != nil {
		slog.Error("migration run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migration run finished successfully")
}

func readConfig() (*migratorConfig, error) {
	_ = godotenv.Load(".env")

	cfg := new(migratorConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func migrateAll() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	logging.SetupJSON(cfg.LogLevel, "billionspend-migrator")

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	//nolint:errcheck
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	sets := []migrationSet{{name: "schema", fsys: baseFS, dir: "migrations", table: postgres.DefaultMigrationsTable}}
	if cfg.AppEnv == "DEV" {
		sets = append(sets, migrationSet{name: "dev seed", fsys: devFS, dir: "test_data", table: devMigrationsTable})
	}

	// seed data depends on the schema: apply in order, revert in reverse
	if cfg.Direction == directionDown {
		for i, j := 0, len(sets)-1; i < j; i, j = i+1, j-1 {
			sets[i], sets[j] = sets[j], sets[i]
		}
	}

	for _, set := range sets {
		driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: set.table})
		if err != nil {
			return fmt.Errorf("init postgres driver for %s: %w", set.name, err)
		}

		version, err := runMigrations(driver, set, cfg.Direction)
		if err != nil {
			return fmt.Errorf("%s migrations failed: %w", set.name, err)
		}

		slog.Info("migrations applied", "set", set.name, "direction", cfg.Direction, "version", version)
	}

	return nil
}

func runMigrations(driver database.Driver, set migrationSet, direction string) (uint, error) {
	src, err := iofs.New(set.fsys, set.dir)
	if err != nil {
		return 0, fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("migrate instance: %w", err)
	}

	if direction == directionDown {
		err = m.Down()
	} else {
		err = m.Up()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read version: %w", err)
	}

	return version, nil
}
