package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/billionspend/internal/api"
	"github.com/fastprodman/billionspend/internal/config"
	"github.com/fastprodman/billionspend/internal/gesture"
	"github.com/fastprodman/billionspend/internal/infra/logging"
	"github.com/fastprodman/billionspend/internal/infra/pgutils"
	"github.com/fastprodman/billionspend/internal/infra/redisutils"
	"github.com/fastprodman/billionspend/internal/persist"
	"github.com/fastprodman/billionspend/internal/repos/kv"
	memkv "github.com/fastprodman/billionspend/internal/repos/kv/memory"
	pgkv "github.com/fastprodman/billionspend/internal/repos/kv/postgres"
	rediskv "github.com/fastprodman/billionspend/internal/repos/kv/redis"
	"github.com/fastprodman/billionspend/internal/services/game"
	"github.com/fastprodman/billionspend/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg, err := readConfig(".env")
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel, "billionspend-api")

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	writer := persist.New(store, cfg.Store.PersistTimeout)
	startWriter(writer)

	// --- Game ---
	g := game.New(writer, game.WithShakeDetector(
		gesture.NewShakeDetector(cfg.Game.ShakeThreshold, cfg.Game.ShakeCooldown),
	))
	g.Load(ctx)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, g)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add("http server", func(c context.Context) error {
		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "store", cfg.Store.Backend)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

// openStore connects the configured backend and registers its closer.
func openStore(ctx context.Context, cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := pgutils.OpenDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}

		shutdownqueue.Add("postgres pool", func(context.Context) error {
			err := db.Close()
			if err != nil {
				return fmt.Errorf("close db: %w", err)
			}

			return nil
		})

		return pgkv.New(db), nil
	case config.BackendRedis:
		client, err := redisutils.OpenClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}

		shutdownqueue.Add("redis client", func(context.Context) error {
			err := client.Close()
			if err != nil {
				return fmt.Errorf("close redis: %w", err)
			}

			return nil
		})

		return rediskv.New(client, cfg.Redis.KeyPrefix), nil
	default:
		slog.Warn("using in-memory store, state is lost on restart")
		return memkv.New(), nil
	}
}

// startWriter runs writer in the background. On shutdown pending writes are
// flushed before the store behind it is closed.
func startWriter(writer *persist.Writer) {
	wctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = writer.Run(wctx)
	}()

	shutdownqueue.Add("state writer", func(c context.Context) error {
		defer func() {
			cancel()
			<-done
		}()

		err := writer.Flush(c)
		if err != nil {
			return fmt.Errorf("flush writer: %w", err)
		}

		return nil
	})
}
