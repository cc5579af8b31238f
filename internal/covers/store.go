// Package covers stores uploaded cover images on the local filesystem.
package covers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes cover blobs under a single directory. Stored names are
// generated, so concurrent uploads of identically named files never collide.
type Store struct {
	dir string
}

// NewStore creates the cover directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data to a freshly named file keeping the original extension and
// returns the stored filename.
func (s *Store) Save(name string, data []byte) (string, error) {
	filename := uuid.NewString() + filepath.Ext(name)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write cover %s: %w", filename, err)
	}
	return filename, nil
}

// Remove deletes a stored cover. Missing files are not an error, so removal
// is safe to call during rollback cleanup.
func (s *Store) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute location of a stored cover.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}
