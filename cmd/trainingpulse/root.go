package main

import (
	"github.com/spf13/cobra"

	"github.com/freeup86/trainingpulse-sub004/internal/app"
	"github.com/freeup86/trainingpulse-sub004/internal/config"
)

var flagConfigPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "trainingpulse",
		Short:         "Bulk operations API for the course production workflow",
		Version:       app.BuildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path (overrides CONFIG_PATH)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSweepCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig prefers --config over CONFIG_PATH.
func loadConfig() (*config.Config, error) {
	if flagConfigPath != "" {
		return config.LoadFrom(flagConfigPath)
	}
	return config.Load()
}
