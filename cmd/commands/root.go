// Package commands implements the listing command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "listing",
		Short:         "Content listing search API and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewBrowseCommand(),
		NewComposeCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
