package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/service/about"
)

// aboutCmd prints the version, operating system and support contact.
var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show information about MEOW",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), about.Collect())
	},
}
