package main

import (
	"context"
	"fmt"
	"logistics-backoffice/internal/adapters/repositories"
	"logistics-backoffice/internal/config"
	"logistics-backoffice/internal/platform/db"
	"logistics-backoffice/internal/platform/logger"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dbtool",
		Short:        "Initialize and seed the back-office database",
		SilenceUsage: true,
	}
	root.AddCommand(newInitCmd(), newSeedCmd())
	return root
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, _ *repositories.Store, log *logger.Logger) error {
				log.Info("schema ready")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	opts := repositories.DefaultSeedOptions()
	var seed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace demo tables with randomized data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			opts.Now = time.Now()

			return withStore(cmd.Context(), func(ctx context.Context, store *repositories.Store, log *logger.Logger) error {
				rng := rand.New(rand.NewPCG(seed, 0))
				if err := repositories.Seed(ctx, store, rng, opts); err != nil {
					return err
				}
				log.Info("seeding complete",
					"fleets", opts.Fleets,
					"orders", opts.Orders,
					"shipments", opts.Shipments,
					"months", opts.Months,
					"rng_seed", seed,
				)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Fleets, "fleets", opts.Fleets, "number of fleets")
	f.IntVar(&opts.Orders, "orders", opts.Orders, "number of orders")
	f.IntVar(&opts.Shipments, "shipments", opts.Shipments, "number of shipments")
	f.IntVar(&opts.Months, "months", opts.Months, "months of shipment history")
	f.Uint64Var(&seed, "rng-seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}

// withStore loads config, opens the database and ensures the schema exists
// before handing a store to fn.
func withStore(ctx context.Context, fn func(context.Context, *repositories.Store, *logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info("initializing database schema", "db_driver", cfg.DBDriver)
	if err := repositories.InitSchema(ctx, conn, cfg.DBDriver); err != nil {
		return err
	}

	return fn(ctx, repositories.NewStore(conn, cfg.DBDriver, log), log)
}
