package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/service/updater"
)

// assumeYes skips the confirmation prompt.
var assumeYes bool

// updateCmd checks GitHub for a newer release and downloads it on confirmation.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a new release and download it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signalContext()
		defer stop()

		var prompter updater.Prompter = updater.NewTerminalPrompter(os.Stdin, cmd.OutOrStdout())
		if assumeYes {
			prompter = &updater.StaticPrompter{Answer: true}
		}

		options := &updater.Options{
			ConfigPath: configPath,
			Prompter:   prompter,
			Out:        cmd.OutOrStdout(),
		}

		return updater.Run(ctx, options)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "download without asking")
}
