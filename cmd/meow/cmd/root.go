package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/config"
	"github.com/oshokin/meow/internal/logger"
	"github.com/oshokin/meow/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel of the diagnostic logger.
	logLevel string

	// rootCmd represents the base command of the archiver.
	rootCmd = &cobra.Command{
		Use:   "meow",
		Short: "Pack folders into .meow containers and unpack them again",
		Long: "MEOW builds ZIP-compatible .meow containers from the selected folders, " +
			"extracts them, and checks GitHub for new releases.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}
)

// Execute runs the meow CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		compressCmd,
		decompressCmd,
		listCmd,
		selectCmd,
		settingsCmd,
		aboutCmd,
		updateCmd,
	)
}
