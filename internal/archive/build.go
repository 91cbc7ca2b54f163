package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oshokin/meow/internal/domain/compression"
)

var (
	// ErrNoFolders is returned by Build when the folder list is empty.
	ErrNoFolders = errors.New("no folders selected")
	// ErrNotDirectory is returned when a selected path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Entry pairs a source file with its name inside the container.
type Entry struct {
	// SourcePath is the file on disk.
	SourcePath string
	// ArchivePath is the slash-separated name stored in the container.
	ArchivePath string
	// Size is the number of bytes copied from SourcePath.
	Size int64
}

// BuildOptions tunes Build.
type BuildOptions struct {
	// Method is applied to every entry. Empty means compression.DefaultMethod.
	Method compression.Method
	// Level tunes the deflate compressor. Empty means compression.DefaultLevel.
	Level compression.Level
	// Progress receives one PhaseEntry event per written file.
	Progress ProgressFunc
}

// BuildResult summarises a finished build.
type BuildResult struct {
	// Entries lists the written entries in container order.
	Entries []Entry
	// Bytes is the total uncompressed size of all entries.
	Bytes int64
	// Skipped lists non-regular files that were not archived.
	Skipped []string
}

// EntryName computes the container name of file selected through folder:
// the path of file relative to the parent of folder, with forward slashes.
func EntryName(folder, file string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(filepath.Clean(folder)), file)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", file, err)
	}

	return filepath.ToSlash(rel), nil
}

// Build writes every regular file under every folder into a new container at outputPath.
// An existing file at outputPath is overwritten. On error the partially written
// container is left in place.
func Build(ctx context.Context, outputPath string, folders []string, opts *BuildOptions) (*BuildResult, error) {
	if len(folders) == 0 {
		return nil, ErrNoFolders
	}

	if opts == nil {
		opts = new(BuildOptions)
	}

	method := opts.Method
	if method == "" {
		method = compression.DefaultMethod
	}

	level := opts.Level
	if level == "" {
		level = compression.DefaultLevel
	}

	for _, folder := range folders {
		if err := ensureDirectory(folder); err != nil {
			return nil, err
		}
	}

	output, err := os.Create(filepath.Clean(outputPath))
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}

	outputInfo, err := output.Stat()
	if err != nil {
		_ = output.Close()

		return nil, fmt.Errorf("stat container: %w", err)
	}

	w := zip.NewWriter(output)
	w.RegisterCompressor(zip.Deflate, compression.Compressor(level))

	b := &builder{
		ctx:        ctx,
		writer:     w,
		method:     method.ZipMethod(),
		outputInfo: outputInfo,
		progress:   opts.Progress,
		container:  outputPath,
		result:     new(BuildResult),
	}

	opts.Progress.phase(PhaseOpened, outputPath)

	var walkErr error
	for _, folder := range folders {
		if walkErr = b.addFolder(folder); walkErr != nil {
			break
		}
	}

	// Close the zip writer first to flush the central directory.
	if closeErr := w.Close(); closeErr != nil && walkErr == nil {
		walkErr = fmt.Errorf("close container writer: %w", closeErr)
	}

	if closeErr := output.Close(); closeErr != nil && walkErr == nil {
		walkErr = fmt.Errorf("close container file: %w", closeErr)
	}

	if walkErr != nil {
		return b.result, walkErr
	}

	opts.Progress.phase(PhaseCompleted, outputPath)

	return b.result, nil
}

// builder carries the state of one Build call.
type builder struct {
	ctx        context.Context //nolint:containedctx // Scoped to a single Build call.
	writer     *zip.Writer
	method     uint16
	outputInfo os.FileInfo
	progress   ProgressFunc
	container  string
	result     *BuildResult
}

// addFolder walks folder in lexical order and writes each regular file.
// A symlinked folder is followed, but entries keep the link's name as prefix.
func (b *builder) addFolder(folder string) error {
	root, err := filepath.EvalSymlinks(folder)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", folder, err)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if err = b.ctx.Err(); err != nil {
			return fmt.Errorf("build interrupted: %w", err)
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}

		// Paths are reported below folder as selected, not below the resolved root.
		selected := filepath.Join(folder, rel)

		if !d.Type().IsRegular() {
			b.result.Skipped = append(b.result.Skipped, selected)

			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		// The container may live inside a selected folder.
		if os.SameFile(info, b.outputInfo) {
			return nil
		}

		name, err := EntryName(folder, selected)
		if err != nil {
			return err
		}

		return b.addFile(selected, name, info)
	})
}

// addFile copies one file into the container.
func (b *builder) addFile(path, name string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", path, err)
	}

	header.Name = name
	header.Method = b.method

	entryWriter, err := b.writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	written, err := io.Copy(entryWriter, file)
	_ = file.Close()

	if err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}

	b.result.Entries = append(b.result.Entries, Entry{
		SourcePath:  path,
		ArchivePath: name,
		Size:        written,
	})
	b.result.Bytes += written

	b.progress.emit(Event{
		Phase:     PhaseEntry,
		Container: b.container,
		Name:      name,
		Index:     len(b.result.Entries) - 1,
		Size:      written,
	})

	return nil
}

// ensureDirectory checks that folder exists and is a directory.
func ensureDirectory(folder string) error {
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("selected folder: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", folder, ErrNotDirectory)
	}

	return nil
}
