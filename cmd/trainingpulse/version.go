package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freeup86/trainingpulse-sub004/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trainingpulse %s (commit %s, built %s)\n", app.Version, app.Commit, app.BuildTime)
		},
	}
}
