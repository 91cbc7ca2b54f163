package selection

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is returned by RemoveAt for an index outside the list.
var ErrIndexOutOfRange = errors.New("selection index out of range")

// Selection is an ordered list of folder paths.
type Selection struct {
	// folders holds the paths in insertion order.
	folders []string
}

// New creates a selection holding the provided folders in order.
func New(folders ...string) Selection {
	return Selection{folders: slices.Clone(folders)}
}

// Add returns a selection with path appended, even if it is already present.
func (s Selection) Add(path string) Selection {
	folders := make([]string, 0, len(s.folders)+1)
	folders = append(folders, s.folders...)

	return Selection{folders: append(folders, path)}
}

// Toggle removes the first occurrence of path, or appends it when absent.
func (s Selection) Toggle(path string) Selection {
	idx := slices.Index(s.folders, path)
	if idx < 0 {
		return s.Add(path)
	}

	return Selection{folders: slices.Delete(slices.Clone(s.folders), idx, idx+1)}
}

// RemoveAt returns a selection without the entry at index.
func (s Selection) RemoveAt(index int) (Selection, error) {
	if index < 0 || index >= len(s.folders) {
		return s, fmt.Errorf("index %d of %d: %w", index, len(s.folders), ErrIndexOutOfRange)
	}

	return Selection{folders: slices.Delete(slices.Clone(s.folders), index, index+1)}, nil
}

// Clear returns an empty selection.
func (Selection) Clear() Selection {
	return Selection{}
}

// Contains reports whether path is selected at least once.
func (s Selection) Contains(path string) bool {
	return slices.Contains(s.folders, path)
}

// Folders returns a copy of the selected paths.
func (s Selection) Folders() []string {
	return slices.Clone(s.folders)
}

// Len returns the number of entries, duplicates included.
func (s Selection) Len() int {
	return len(s.folders)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.folders) == 0
}
