package compressor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/meow/internal/archive"
	"github.com/oshokin/meow/internal/config"
	"github.com/oshokin/meow/internal/domain/compression"
	"github.com/oshokin/meow/internal/logger"
	selectionrepo "github.com/oshokin/meow/internal/repository/selection"
	"github.com/oshokin/meow/internal/service/common"
)

// Options contains inputs for the compressor entry point.
type Options struct {
	// ConfigPath is an optional path to the settings file.
	ConfigPath string
	// Folders overrides the persisted selection when not empty.
	Folders []string
	// Out receives the status lines. Defaults to stdout.
	Out io.Writer
}

// compressor builds one container from the selected folders.
type compressor struct {
	// cfg holds the output name and compression flags.
	cfg *config.Config
	// repo stores the folder selection between runs.
	repo selectionrepo.Repository
	// reporter prints the status line.
	reporter *common.Reporter
}

// Run executes the build flow.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "meow-compressor")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	c := &compressor{
		cfg:      cfg,
		repo:     selectionrepo.NewFileRepository(cfg.SelectionFile),
		reporter: common.NewReporter(opts.Out),
	}

	return c.Run(ctx, opts.Folders)
}

// Run writes the container and clears the stored selection if it was used.
func (c *compressor) Run(ctx context.Context, folders []string) error {
	folders, fromStore, err := c.resolveFolders(ctx, folders)
	if err != nil {
		return err
	}

	if len(folders) == 0 {
		logger.Warn(ctx, "No folders selected.")
		c.reporter.Warn("No folders selected.")

		return archive.ErrNoFolders
	}

	method, err := compression.ParseMethod(c.cfg.Compression.Method)
	if err != nil {
		return err
	}

	level, err := compression.ParseLevel(c.cfg.Compression.Level)
	if err != nil {
		return err
	}

	marker, err := common.AcquireMarker(ctx, ".")
	if err != nil {
		return err
	}

	defer marker.Release(ctx)

	logger.InfoKV(ctx, "Building container",
		"output", c.cfg.OutputName, "folders", len(folders), "method", method, "level", level)

	result, err := archive.Build(ctx, c.cfg.OutputName, folders, &archive.BuildOptions{
		Method: method,
		Level:  level,
		Progress: func(event archive.Event) {
			if event.Phase == archive.PhaseEntry {
				c.reporter.Status("Compressing %s into a pie.", event.Name)
			}
		},
	})
	if err != nil {
		logger.ErrorKV(ctx, "Build failed, the container may be incomplete",
			"output", c.cfg.OutputName, "error", err)

		return fmt.Errorf("build container: %w", err)
	}

	for _, skipped := range result.Skipped {
		logger.WarnKV(ctx, "Skipped non-regular file", "path", skipped)
	}

	c.reporter.Done("Compression completed.")
	logger.InfoKV(ctx, "Container written",
		"output", c.cfg.OutputName,
		"entries", len(result.Entries),
		"size", humanize.Bytes(uint64(result.Bytes)), //nolint:gosec // Sizes are never negative.
	)

	if !fromStore {
		return nil
	}

	selection, err := c.repo.Load(ctx)
	if err != nil {
		return err
	}

	return c.repo.Save(ctx, selection.Clear())
}

// resolveFolders returns the explicit folders as absolute paths, or the stored selection.
// The boolean reports whether the stored selection was used.
func (c *compressor) resolveFolders(ctx context.Context, folders []string) ([]string, bool, error) {
	if len(folders) > 0 {
		resolved := make([]string, 0, len(folders))
		for _, folder := range folders {
			abs, err := filepath.Abs(folder)
			if err != nil {
				return nil, false, fmt.Errorf("resolve %s: %w", folder, err)
			}

			resolved = append(resolved, abs)
		}

		return resolved, false, nil
	}

	selection, err := c.repo.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load selection: %w", err)
	}

	return selection.Folders(), true, nil
}
