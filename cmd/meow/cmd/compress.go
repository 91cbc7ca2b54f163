package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/service/compressor"
)

// compressCmd packs the given folders, or the stored selection, into the configured container.
var compressCmd = &cobra.Command{
	Use:   "compress [folder...]",
	Short: "Compress folders into a .meow container",
	Long: "Compress the given folders into the configured container. " +
		"Without arguments the stored selection is used and cleared afterwards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signalContext()
		defer stop()

		options := &compressor.Options{
			ConfigPath: configPath,
			Folders:    args,
			Out:        cmd.OutOrStdout(),
		}

		return compressor.Run(ctx, options)
	},
}
