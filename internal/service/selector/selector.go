package selector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/meow/internal/archive"
	"github.com/oshokin/meow/internal/config"
	domain "github.com/oshokin/meow/internal/domain/selection"
	"github.com/oshokin/meow/internal/logger"
	selectionrepo "github.com/oshokin/meow/internal/repository/selection"
)

// Selector applies selection transitions and persists the result.
type Selector struct {
	// repo stores the selection file.
	repo selectionrepo.Repository
}

// New creates a selector over the selection file named in the settings at configPath.
func New(configPath string) (*Selector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return NewWithRepository(selectionrepo.NewFileRepository(cfg.SelectionFile)), nil
}

// NewWithRepository creates a selector over the provided repository.
func NewWithRepository(repo selectionrepo.Repository) *Selector {
	return &Selector{repo: repo}
}

// List returns the current selection.
func (s *Selector) List(ctx context.Context) (domain.Selection, error) {
	return s.repo.Load(ctx)
}

// Add appends each folder as an absolute path. Every folder must be an existing directory.
func (s *Selector) Add(ctx context.Context, folders ...string) (domain.Selection, error) {
	return s.update(ctx, func(current domain.Selection) (domain.Selection, error) {
		for _, folder := range folders {
			abs, err := existingDirectory(folder)
			if err != nil {
				return current, err
			}

			current = current.Add(abs)
			logger.InfoKV(ctx, "Folder added", "path", abs)
		}

		return current, nil
	})
}

// Toggle removes the folder when selected, otherwise adds it.
func (s *Selector) Toggle(ctx context.Context, folder string) (domain.Selection, error) {
	return s.update(ctx, func(current domain.Selection) (domain.Selection, error) {
		abs, err := filepath.Abs(folder)
		if err != nil {
			return current, fmt.Errorf("resolve %s: %w", folder, err)
		}

		if current.Contains(abs) {
			logger.InfoKV(ctx, "Folder removed", "path", abs)

			return current.Toggle(abs), nil
		}

		if abs, err = existingDirectory(folder); err != nil {
			return current, err
		}

		logger.InfoKV(ctx, "Folder added", "path", abs)

		return current.Toggle(abs), nil
	})
}

// RemoveAt removes the entry at a zero-based index.
func (s *Selector) RemoveAt(ctx context.Context, index int) (domain.Selection, error) {
	return s.update(ctx, func(current domain.Selection) (domain.Selection, error) {
		return current.RemoveAt(index)
	})
}

// Clear empties the selection.
func (s *Selector) Clear(ctx context.Context) (domain.Selection, error) {
	return s.update(ctx, func(current domain.Selection) (domain.Selection, error) {
		return current.Clear(), nil
	})
}

// update loads, transforms and saves the selection.
func (s *Selector) update(
	ctx context.Context,
	transition func(domain.Selection) (domain.Selection, error),
) (domain.Selection, error) {
	current, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Selection{}, err
	}

	next, err := transition(current)
	if err != nil {
		return current, err
	}

	if err = s.repo.Save(ctx, next); err != nil {
		return current, err
	}

	return next, nil
}

// existingDirectory returns the absolute, cleaned path of folder if it is a directory.
func existingDirectory(folder string) (string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", folder, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("selected folder: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, archive.ErrNotDirectory)
	}

	return abs, nil
}
