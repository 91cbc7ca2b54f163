package selection

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/meow/internal/domain/selection"
)

// TestFileRepository_MissingIsEmpty verifies Load returns an empty selection for a missing file.
func TestFileRepository_MissingIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))

	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, s.IsEmpty())
}

// TestFileRepository_SaveLoad_Roundtrip ensures order and duplicates survive Save and Load.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "selection.yaml")
	repo := NewFileRepository(file)

	want := domain.New("/data/photos", "/data/music", "/data/photos")
	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.Folders(), got.Folders())

	require.NoError(t, repo.Save(context.Background(), got.Clear()))

	got, err = repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, got.IsEmpty())

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_CorruptFile reports decoding errors.
func TestFileRepository_CorruptFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "selection.yaml")
	require.NoError(t, os.WriteFile(file, []byte("folders: [unterminated"), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
}
