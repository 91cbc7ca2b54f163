package archive

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"time"
)

// ListedEntry describes one entry stored in a container.
type ListedEntry struct {
	// Name is the stored slash-separated entry name.
	Name string
	// Method is the archive/zip method identifier.
	Method uint16
	// CompressedSize is the stored size in bytes.
	CompressedSize uint64
	// UncompressedSize is the original size in bytes.
	UncompressedSize uint64
	// CRC32 is the checksum of the uncompressed data.
	CRC32 uint32
	// Modified is the modification time recorded in the header.
	Modified time.Time
	// IsDir reports a directory entry.
	IsDir bool
}

// List returns the entries of a container in stored order.
func List(containerPath string) ([]ListedEntry, error) {
	reader, err := zip.OpenReader(filepath.Clean(containerPath))
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	entries := make([]ListedEntry, 0, len(reader.File))
	for _, file := range reader.File {
		entries = append(entries, ListedEntry{
			Name:             file.Name,
			Method:           file.Method,
			CompressedSize:   file.CompressedSize64,
			UncompressedSize: file.UncompressedSize64,
			CRC32:            file.CRC32,
			Modified:         file.Modified,
			IsDir:            file.FileInfo().IsDir(),
		})
	}

	return entries, nil
}
