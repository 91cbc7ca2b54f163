//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/meow/internal/logger"
)

// MarkerFilename marks that a meow operation is writing to the working directory.
const MarkerFilename = "meow-run-marker.pid"

// markerFileMode is the permission of the marker file.
const markerFileMode = 0o600

// ErrAlreadyRunning is returned when another live process holds the marker.
var ErrAlreadyRunning = errors.New("another meow operation is running now")

// Marker is a held run marker. Release removes it.
type Marker struct {
	// path is the marker file location.
	path string
}

// AcquireMarker creates the run marker in dir.
// A marker left by a process that no longer exists is removed and taken over.
func AcquireMarker(ctx context.Context, dir string) (*Marker, error) {
	path := filepath.Join(dir, MarkerFilename)

	logger.DebugKV(ctx, "Checking for the presence of a run marker", "path", path)

	created, err := createMarker(path)
	if err == nil {
		return created, nil
	}

	if !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	if isMarkerOwnerAlive(ctx, path) {
		return nil, ErrAlreadyRunning
	}

	logger.InfoKV(ctx, "The run marker is stale, taking it over", "path", path)

	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale marker: %w", err)
	}

	created, err = createMarker(path)
	if errors.Is(err, os.ErrExist) {
		return nil, ErrAlreadyRunning
	}

	return created, err
}

// Release removes the marker. It is safe to call on a nil Marker.
func (m *Marker) Release(ctx context.Context) {
	if m == nil {
		return
	}

	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove the run marker", "path", m.path, "error", err)
	}
}

// createMarker exclusively creates the marker holding the current PID.
func createMarker(path string) (*Marker, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, markerFileMode)
	if err != nil {
		return nil, err
	}

	_, err = file.WriteString(strconv.Itoa(os.Getpid()))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(path)

		return nil, fmt.Errorf("write run marker: %w", err)
	}

	return &Marker{path: path}, nil
}

// isMarkerOwnerAlive reads the PID from the marker and looks it up in the process table.
// Unreadable markers count as stale.
func isMarkerOwnerAlive(ctx context.Context, path string) bool {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil || pid <= 0 {
		return false
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		logger.WarnKV(ctx, "Unable to inspect the process table", "error", err)

		// Without a process table the marker is assumed to be live.
		return true
	}

	return process != nil
}
