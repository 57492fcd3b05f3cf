package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/app"
)

// newSweepCmd runs one expiry and retention pass. It is meant for cron when
// the in-process sweeper is disabled (bulk.sweep_interval = 0).
func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-previews",
		Short: "Expire overdue previews and purge old terminal ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := app.NewLogger(cfg.Log)
			ctx := cmd.Context()

			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			previews, err := app.OpenPreviewStore(ctx, cfg, pool)
			if err != nil {
				return err
			}
			defer previews.Close() //nolint:errcheck

			res, err := app.NewBulkService(logger, cfg, pool, previews.Store).SweepPreviews(ctx)
			if err != nil {
				return err
			}

			logger.Info("preview sweep completed",
				slog.Int("expired", res.Expired),
				slog.Int("purged", res.Purged),
			)
			return nil
		},
	}
}
