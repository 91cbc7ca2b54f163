package selection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/meow/internal/config"
	domain "github.com/oshokin/meow/internal/domain/selection"
)

// Repository defines persistence operations for the folder selection.
type Repository interface {
	Load(ctx context.Context) (domain.Selection, error)
	Save(ctx context.Context, selection domain.Selection) error
}

// FileRepository persists the selection to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the YAML selection file.
	path string
	// mu serialises access to the file within one process.
	mu sync.Mutex
}

// document is the on-disk shape of the selection file.
type document struct {
	Folders []string `yaml:"folders"`
}

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = config.DefaultSelectionFilename
	}

	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the selection from disk. A missing file is an empty selection.
func (r *FileRepository) Load(_ context.Context) (domain.Selection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.New(), nil
		}

		return domain.Selection{}, fmt.Errorf("read selection file: %w", err)
	}

	var doc document
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		return domain.Selection{}, fmt.Errorf("decode selection file: %w", err)
	}

	return domain.New(doc.Folders...), nil
}

// Save writes the selection to disk, replacing the previous contents.
func (r *FileRepository) Save(_ context.Context, selection domain.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := document{Folders: selection.Folders()}
	if doc.Folders == nil {
		doc.Folders = []string{}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write selection file: %w", err)
	}

	return nil
}
