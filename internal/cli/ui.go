package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkutlay/checkdeck/internal/ui"
)

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the interactive workbench",
		Long: `Launch the interactive terminal workbench. This is also what running
checkdeck without a subcommand does.

The workbench probes the required tools at startup, lets you pick a
project directory and severity filters, runs cppcheck, and generates
HTML and PDF reports from the results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(GetGlobalConfig())
		},
	}
}
