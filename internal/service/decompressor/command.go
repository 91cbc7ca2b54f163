package decompressor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/meow/internal/archive"
	"github.com/oshokin/meow/internal/config"
	"github.com/oshokin/meow/internal/logger"
	"github.com/oshokin/meow/internal/service/common"
)

// ErrNoContainer is returned when no container path is given.
var ErrNoContainer = errors.New("no container selected")

// Options contains inputs for the decompressor entry point.
type Options struct {
	// Container is the path of the container to extract.
	Container string
	// Destination is the directory the entries are written to.
	Destination string
	// Out receives the status lines. Defaults to stdout.
	Out io.Writer
}

// Run extracts the container into the destination directory.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "meow-decompressor")
	reporter := common.NewReporter(opts.Out)

	if strings.TrimSpace(opts.Container) == "" {
		logger.Warn(ctx, "No container selected.")
		reporter.Warn("No container selected.")

		return ErrNoContainer
	}

	if strings.TrimSpace(opts.Destination) == "" {
		logger.Warn(ctx, "No extraction directory selected.")
		reporter.Warn("No extraction directory selected.")

		return archive.ErrNoDestination
	}

	if !strings.EqualFold(filepath.Ext(opts.Container), config.ContainerExtension) {
		logger.WarnKV(ctx, "The container does not have the usual extension, trying anyway",
			"container", opts.Container, "expected", config.ContainerExtension)
	}

	marker, err := common.AcquireMarker(ctx, ".")
	if err != nil {
		return err
	}

	defer marker.Release(ctx)

	ctx = logger.WithKV(ctx, "container", opts.Container)

	result, err := archive.Extract(ctx, opts.Container, opts.Destination, &archive.ExtractOptions{
		Progress: func(event archive.Event) {
			switch event.Phase {
			case archive.PhaseOpened:
				reporter.Status("Decompressing... %s", opts.Container)
			case archive.PhaseEntry:
				logger.DebugKV(ctx, "Extracted entry", "name", event.Name, "size", event.Size)
			case archive.PhaseCompleted:
				reporter.Done("Decompression completed.")
			}
		},
	})
	if err != nil {
		logger.ErrorKV(ctx, "Extraction failed", "destination", opts.Destination, "error", err)

		return fmt.Errorf("extract container: %w", err)
	}

	logger.InfoKV(ctx, "Container extracted",
		"destination", opts.Destination,
		"files", result.Files,
		"directories", result.Directories,
		"size", humanize.Bytes(uint64(result.Bytes)), //nolint:gosec // Sizes are never negative.
	)

	return nil
}
