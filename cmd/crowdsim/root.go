package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the crowdsim CLI's command tree: run the simulation
// loop described by a preset, or print the build version.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "crowdsim",
		Short:         "crowdsim — predictive-reactive and ORCA crowd simulation driver",
		SilenceErrors: false,
		SilenceUsage:  true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())

	return root
}
