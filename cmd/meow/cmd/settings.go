package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/meow/internal/config"
	"github.com/oshokin/meow/internal/domain/compression"
)

// settingsCmd groups the commands reading and editing the settings file.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the compression settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal settings: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)

		return err
	},
}

var settingsLevelCmd = &cobra.Command{
	Use:       "set-level <level>",
	Short:     "Set the compression level",
	Long:      "Set the compression level. One of: " + joinLevels() + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: levelNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := compression.ParseLevel(args[0])
		if err != nil {
			return err
		}

		return updateSettings(cmd, func(cfg *config.Config) {
			cfg.Compression.Level = string(level)
		})
	},
}

var settingsMethodCmd = &cobra.Command{
	Use:   "set-method <method>",
	Short: "Set the compression method",
	Long:  "Set the compression method. One of: ZIP_STORED, ZIP_DEFLATED.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := compression.ParseMethod(args[0])
		if err != nil {
			return err
		}

		return updateSettings(cmd, func(cfg *config.Config) {
			cfg.Compression.Method = string(method)
		})
	},
}

// updateSettings loads the settings, applies change and saves them back.
func updateSettings(cmd *cobra.Command, change func(*config.Config)) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	change(cfg)

	if err = config.Save(configPath, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Compression: %s, %s\n", cfg.Compression.Method, cfg.Compression.Level)

	return nil
}

func levelNames() []string {
	levels := compression.Levels()

	names := make([]string, 0, len(levels))
	for _, level := range levels {
		names = append(names, string(level))
	}

	return names
}

func joinLevels() string {
	return strings.Join(levelNames(), ", ")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsLevelCmd, settingsMethodCmd)
}
