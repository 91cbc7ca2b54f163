package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/service/decompressor"
)

// decompressCmd extracts a container into a destination directory.
var decompressCmd = &cobra.Command{
	Use:   "decompress <container> <destination>",
	Short: "Extract a container into a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signalContext()
		defer stop()

		options := &decompressor.Options{
			Container:   args[0],
			Destination: args[1],
			Out:         cmd.OutOrStdout(),
		}

		return decompressor.Run(ctx, options)
	},
}
