// Package cli holds the ovumcalc command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the ovumcalc command with every subcommand attached.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ovumcalc",
		Short:         "Menstrual cycle window calculator (CLI or HTTP API)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("ovumcalc v{{.Version}}\n")

	cmd.AddCommand(
		newServeCommand(),
		newWindowsCommand(),
		newPhaseCommand(),
		newResetPinCommand(),
	)
	return cmd
}
