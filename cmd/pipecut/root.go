package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/piwi3910/pipecut/internal/config"
	"github.com/piwi3910/pipecut/internal/inventory"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pipecut",
		Short:         "Plan pipe cutting jobs and track leftover stock",
		Long:          "pipecut computes cutting plans for raw pipes, reuses saved leftovers first, and keeps the leftover inventory up to date.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlanCmd(),
		newInventoryCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pipecut version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(version)
			return nil
		},
	}
}

// app bundles the resolved configuration with an open inventory store.
type app struct {
	cfg   config.Config
	store inventory.Store
	close func()
}

// openApp loads the configuration and connects the configured backend.
// Callers must invoke close when done.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		pg, err := inventory.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.InitSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return &app{cfg: cfg, store: pg, close: pg.Close}, nil
	default:
		return &app{
			cfg:   cfg,
			store: inventory.NewJSONStore(cfg.InventoryPath),
			close: func() {},
		}, nil
	}
}
