package main

import (
	"fmt"
	"io"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list the embedded database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			m, err := postgres.NewMigrator(cfg.Database)
			if err != nil {
				return err
			}
			defer m.Close() //nolint:errcheck

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch direction {
			case "down":
				res, err := m.Down(ctx)
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				printResults(out, []*goose.MigrationResult{res})
			case "status":
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				for _, st := range statuses {
					applied := "-"
					if !st.AppliedAt.IsZero() {
						applied = st.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%-8s %-20s %s\n", st.State, applied, st.Source.Path)
				}
			default:
				results, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "no pending migrations")
				}
				printResults(out, results)
			}
			return nil
		},
	}
}

func printResults(w io.Writer, results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		fmt.Fprintf(w, "%-4s %s (%s)\n", r.Direction, r.Source.Path, r.Duration)
	}
}
