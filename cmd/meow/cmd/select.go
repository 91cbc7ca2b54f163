package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/meow/internal/domain/selection"
	"github.com/oshokin/meow/internal/service/selector"
)

// selectCmd groups the commands editing the stored folder selection.
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Edit the folders selected for compression",
}

var selectAddCmd = &cobra.Command{
	Use:   "add <folder...>",
	Short: "Append folders to the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE: withSelector(func(ctx context.Context, s *selector.Selector, args []string) (selection.Selection, error) {
		return s.Add(ctx, args...)
	}),
}

var selectToggleCmd = &cobra.Command{
	Use:   "toggle <folder>",
	Short: "Remove a selected folder, or add it when it is not selected",
	Args:  cobra.ExactArgs(1),
	RunE: withSelector(func(ctx context.Context, s *selector.Selector, args []string) (selection.Selection, error) {
		return s.Toggle(ctx, args[0])
	}),
}

var selectRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove the folder at a zero-based position",
	Args:  cobra.ExactArgs(1),
	RunE: withSelector(func(ctx context.Context, s *selector.Selector, args []string) (selection.Selection, error) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return selection.Selection{}, fmt.Errorf("invalid index %q: %w", args[0], err)
		}

		return s.RemoveAt(ctx, index)
	}),
}

var selectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the selection",
	Args:  cobra.NoArgs,
	RunE: withSelector(func(ctx context.Context, s *selector.Selector, _ []string) (selection.Selection, error) {
		return s.Clear(ctx)
	}),
}

var selectListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the selected folders",
	Args:  cobra.NoArgs,
	RunE: withSelector(func(ctx context.Context, s *selector.Selector, _ []string) (selection.Selection, error) {
		return s.List(ctx)
	}),
}

// withSelector opens the selection store, applies action and prints the resulting selection.
func withSelector(
	action func(ctx context.Context, s *selector.Selector, args []string) (selection.Selection, error),
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := selector.New(configPath)
		if err != nil {
			return err
		}

		current, err := action(cmd.Context(), s, args)
		if err != nil {
			return err
		}

		printSelection(cmd.OutOrStdout(), current)

		return nil
	}
}

func printSelection(out io.Writer, current selection.Selection) {
	if current.IsEmpty() {
		_, _ = fmt.Fprintln(out, "No folders selected.")

		return
	}

	for i, folder := range current.Folders() {
		_, _ = fmt.Fprintf(out, "%d\t%s\n", i, folder)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	selectCmd.AddCommand(selectAddCmd, selectToggleCmd, selectRemoveCmd, selectClearCmd, selectListCmd)
}
