package main

import (
	"context"
	"errors"
	"fmt"
	"logistics-backoffice/internal/adapters/repositories"
	"logistics-backoffice/internal/api"
	"logistics-backoffice/internal/config"
	"logistics-backoffice/internal/platform/db"
	"logistics-backoffice/internal/platform/logger"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// main is the application composition root.
// It wires the SQL store behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, cfg.DBDriver); err != nil {
		return err
	}

	store := repositories.NewStore(conn, cfg.DBDriver, log.With("component", "store"))

	// Demo data for local runs.
	if cfg.SeedOnStart {
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		if err := repositories.Seed(ctx, store, rng, repositories.DefaultSeedOptions()); err != nil {
			return err
		}
		log.Info("database seeded")
	}

	router := api.NewRouter(api.Deps{
		Store:       store,
		Log:         log,
		MonthsCount: cfg.DashboardMonths,
		CORSOrigins: cfg.Origins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
