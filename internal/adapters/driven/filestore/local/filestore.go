// Package local implements the FileStore port on the local filesystem.
package local

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore reads and writes files on local disk.
type FileStore struct{}

// New creates a local filesystem store.
func New() *FileStore {
	return &FileStore{}
}

// List returns the names of regular files directly inside dir.
func (f *FileStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read returns the contents of the file at path.
func (f *FileStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Write creates or replaces the file at path.
func (f *FileStore) Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Move renames src to dst, replacing any existing file.
func (f *FileStore) Move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to %s: %w", src, dst, err)
	}
	return nil
}

// Remove deletes the file at path.
func (f *FileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates dir and any missing parents.
func (f *FileStore) EnsureDir(dir string) error {
	if err := os.MkdirAll(filepath.Clean(dir), 0700); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
