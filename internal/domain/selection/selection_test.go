package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAdd_KeepsDuplicates verifies that Add appends even an existing path.
func TestAdd_KeepsDuplicates(t *testing.T) {
	t.Parallel()

	s := New().Add("/data/photos").Add("/data/photos")

	require.Equal(t, []string{"/data/photos", "/data/photos"}, s.Folders())
	require.Equal(t, 2, s.Len())
}

// TestToggle removes the first occurrence of a present path and appends an absent one.
func TestToggle(t *testing.T) {
	t.Parallel()

	s := New("/a", "/b", "/a")

	s = s.Toggle("/a")
	require.Equal(t, []string{"/b", "/a"}, s.Folders())

	s = s.Toggle("/c")
	require.Equal(t, []string{"/b", "/a", "/c"}, s.Folders())
}

// TestRemoveAt covers valid and out-of-range indexes.
func TestRemoveAt(t *testing.T) {
	t.Parallel()

	s := New("/a", "/b", "/c")

	got, err := s.RemoveAt(1)
	require.NoError(t, err)
	require.Equal(t, []string{"/a", "/c"}, got.Folders())

	_, err = s.RemoveAt(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.RemoveAt(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

// TestTransitions_DoNotMutateReceiver ensures every transition leaves the original untouched.
func TestTransitions_DoNotMutateReceiver(t *testing.T) {
	t.Parallel()

	original := New("/a", "/b")

	_ = original.Add("/c")
	_ = original.Toggle("/a")
	_, _ = original.RemoveAt(0)
	_ = original.Clear()

	folders := original.Folders()
	folders[0] = "/mutated"

	require.Equal(t, []string{"/a", "/b"}, original.Folders())
}

// TestClear returns an empty selection.
func TestClear(t *testing.T) {
	t.Parallel()

	s := New("/a").Clear()

	require.True(t, s.IsEmpty())
	require.False(t, s.Contains("/a"))
	require.Empty(t, s.Folders())
}
