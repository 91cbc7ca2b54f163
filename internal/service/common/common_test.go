//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAcquireMarker_Release creates and removes the marker file.
func TestAcquireMarker_Release(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	marker, err := AcquireMarker(ctx, dir)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, MarkerFilename))
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(os.Getpid()), string(contents))

	marker.Release(ctx)

	_, err = os.Stat(filepath.Join(dir, MarkerFilename))
	require.ErrorIs(t, err, os.ErrNotExist)

	// Releasing twice or a nil marker is harmless.
	marker.Release(ctx)
	(*Marker)(nil).Release(ctx)
}

// TestAcquireMarker_LiveOwnerBlocks refuses a marker held by a running process.
func TestAcquireMarker_LiveOwnerBlocks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	marker, err := AcquireMarker(ctx, dir)
	require.NoError(t, err)

	defer marker.Release(ctx)

	_, err = AcquireMarker(ctx, dir)
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

// TestAcquireMarker_StaleIsRecovered takes over markers with a dead or unreadable owner.
func TestAcquireMarker_StaleIsRecovered(t *testing.T) {
	t.Parallel()

	for _, contents := range []string{"2147483646", "not-a-pid", ""} {
		dir := t.TempDir()
		path := filepath.Join(dir, MarkerFilename)
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		marker, err := AcquireMarker(context.Background(), dir)
		require.NoError(t, err, contents)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, strconv.Itoa(os.Getpid()), string(data))

		marker.Release(context.Background())
	}
}

// TestReporter writes every kind of line to the provided writer.
func TestReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	r := NewReporter(&out)
	r.Status("Compressing %s into a pie.", "photos/a.jpg")
	r.Warn("No folders selected.")
	r.Done("Compression completed.")

	require.Same(t, &out, r.Writer())
	require.Contains(t, out.String(), "Compressing photos/a.jpg into a pie.")
	require.Contains(t, out.String(), "No folders selected.")
	require.Contains(t, out.String(), "Compression completed.")
}
