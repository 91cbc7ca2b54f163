package cmd

import (
	"archive/zip"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/archive"
)

// listCmd prints the entries of a container without extracting it.
var listCmd = &cobra.Command{
	Use:   "list <container>",
	Short: "List the entries of a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := archive.List(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tMETHOD\tSIZE\tPACKED\tMODIFIED")

		for _, entry := range entries {
			method := "deflated"
			if entry.Method == zip.Store {
				method = "stored"
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				entry.Name,
				method,
				humanize.Bytes(entry.UncompressedSize),
				humanize.Bytes(entry.CompressedSize),
				humanize.Time(entry.Modified),
			)
		}

		return w.Flush()
	},
}
