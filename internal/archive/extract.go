package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/oshokin/meow/internal/domain/compression"
)

// MaxEntrySize is the largest uncompressed entry Extract accepts (10 GiB).
const MaxEntrySize = 10 << 30

const (
	// defaultFileMode is used for entries stored without permission bits.
	defaultFileMode os.FileMode = 0o644
	// defaultDirMode is used for every directory created during extraction.
	defaultDirMode os.FileMode = 0o755
)

var (
	// ErrNoDestination is returned by Extract when no destination directory is given.
	ErrNoDestination = errors.New("no extraction directory selected")
	// ErrUnsafePath is returned for entries that would be written outside the destination.
	ErrUnsafePath = errors.New("entry path escapes the destination directory")
	// ErrEntryTooLarge is returned for entries declaring more than MaxEntrySize bytes.
	ErrEntryTooLarge = errors.New("entry exceeds the size limit")
	// errSizeMismatch is returned when an entry holds more data than it declares.
	errSizeMismatch = errors.New("entry is larger than its declared size")
)

// ExtractOptions tunes Extract.
type ExtractOptions struct {
	// Progress receives PhaseOpened, one PhaseEntry per entry and PhaseCompleted.
	Progress ProgressFunc
}

// ExtractResult summarises a finished extraction.
type ExtractResult struct {
	// Files is the number of regular files written.
	Files int
	// Directories is the number of directory entries created.
	Directories int
	// Bytes is the total number of bytes written.
	Bytes int64
}

// Extract writes every entry of the container at containerPath below destination.
// All entry names are validated before the first write, so an unsafe container
// leaves the destination untouched.
func Extract(ctx context.Context, containerPath, destination string, opts *ExtractOptions) (*ExtractResult, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, ErrNoDestination
	}

	if opts == nil {
		opts = new(ExtractOptions)
	}

	reader, err := zip.OpenReader(filepath.Clean(containerPath))
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	reader.RegisterDecompressor(zip.Deflate, compression.Decompressor())
	opts.Progress.phase(PhaseOpened, containerPath)

	absDestination, err := filepath.Abs(destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	targets := make([]string, len(reader.File))
	for i, file := range reader.File {
		if targets[i], err = resolveEntry(absDestination, file); err != nil {
			return nil, err
		}
	}

	if err = os.MkdirAll(absDestination, defaultDirMode); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	result := new(ExtractResult)

	for i, file := range reader.File {
		if err = ctx.Err(); err != nil {
			return result, fmt.Errorf("extraction interrupted: %w", err)
		}

		written, err := extractEntry(file, targets[i])
		if err != nil {
			return result, fmt.Errorf("extract %s: %w", file.Name, err)
		}

		if file.FileInfo().IsDir() {
			result.Directories++
		} else {
			result.Files++
			result.Bytes += written
		}

		opts.Progress.emit(Event{
			Phase:     PhaseEntry,
			Container: containerPath,
			Name:      file.Name,
			Index:     i,
			Size:      written,
		})
	}

	opts.Progress.phase(PhaseCompleted, containerPath)

	return result, nil
}

// resolveEntry validates an entry and returns its target path below absDestination.
func resolveEntry(absDestination string, file *zip.File) (string, error) {
	name := file.Name

	if file.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("symlink %s: %w", name, ErrUnsafePath)
	}

	if file.UncompressedSize64 > MaxEntrySize {
		return "", fmt.Errorf("%s declares %d bytes: %w", name, file.UncompressedSize64, ErrEntryTooLarge)
	}

	normalized := strings.ReplaceAll(name, `\`, "/")
	if normalized == "" || path.IsAbs(normalized) || filepath.VolumeName(filepath.FromSlash(normalized)) != "" {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafePath)
	}

	target := filepath.Join(absDestination, filepath.FromSlash(normalized))
	if !isWithinDir(absDestination, target) {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafePath)
	}

	// Only a directory entry may name the destination itself.
	if target == absDestination && !file.FileInfo().IsDir() {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafePath)
	}

	return target, nil
}

// isWithinDir reports whether target is base or lies below it.
func isWithinDir(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// extractEntry writes a single entry to target and returns the number of bytes written.
func extractEntry(file *zip.File, target string) (int64, error) {
	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(target, defaultDirMode); err != nil {
			return 0, fmt.Errorf("create directory: %w", err)
		}

		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), defaultDirMode); err != nil {
		return 0, fmt.Errorf("create parent directory: %w", err)
	}

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = defaultFileMode
	}

	source, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("open entry: %w", err)
	}

	defer func() {
		_ = source.Close()
	}()

	output, err := os.OpenFile(filepath.Clean(target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	// One extra byte detects entries longer than declared.
	limit := int64(file.UncompressedSize64) + 1 //nolint:gosec // Bounded by MaxEntrySize.

	written, err := io.Copy(output, io.LimitReader(source, limit))
	if closeErr := output.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return written, fmt.Errorf("write file: %w", err)
	}

	if written > int64(file.UncompressedSize64) { //nolint:gosec // Bounded by MaxEntrySize.
		return written, errSizeMismatch
	}

	return written, nil
}
