package selector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/meow/internal/archive"
	domain "github.com/oshokin/meow/internal/domain/selection"
	selectionrepo "github.com/oshokin/meow/internal/repository/selection"
)

// newSelector returns a selector over a temporary selection file.
func newSelector(t *testing.T) *Selector {
	t.Helper()

	return NewWithRepository(selectionrepo.NewFileRepository(filepath.Join(t.TempDir(), "selection.yaml")))
}

// TestSelector_AddToggleRemoveClear walks through every transition and checks persistence.
func TestSelector_AddToggleRemoveClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newSelector(t)
	a, b := t.TempDir(), t.TempDir()

	got, err := s.Add(ctx, a, b, a)
	require.NoError(t, err)
	require.Equal(t, []string{a, b, a}, got.Folders())

	got, err = s.Toggle(ctx, a)
	require.NoError(t, err)
	require.Equal(t, []string{b, a}, got.Folders())

	got, err = s.RemoveAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []string{a}, got.Folders())

	listed, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, got.Folders(), listed.Folders())

	got, err = s.Clear(ctx)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

// TestSelector_AddRejectsFiles keeps the stored selection unchanged on error.
func TestSelector_AddRejectsFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newSelector(t)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := s.Add(ctx, file)
	require.ErrorIs(t, err, archive.ErrNotDirectory)

	_, err = s.Add(ctx, filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	listed, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.New().Folders(), listed.Folders())
}

// TestSelector_ToggleRemovesDeletedFolder allows removing a folder that no longer exists.
func TestSelector_ToggleRemovesDeletedFolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newSelector(t)

	folder := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.Mkdir(folder, 0o755))

	_, err := s.Add(ctx, folder)
	require.NoError(t, err)
	require.NoError(t, os.Remove(folder))

	got, err := s.Toggle(ctx, folder)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())

	_, err = s.RemoveAt(ctx, 5)
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}
