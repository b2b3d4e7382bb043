package memory

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/calypso-labs/contexta/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
type FileStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// FailMove makes every Move fail; used to exercise the
	// best-effort mirror path in tests.
	FailMove bool
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// List returns the file names directly inside dir.
func (f *FileStore) List(dir string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.dirs[path.Clean(dir)] {
		return nil, fmt.Errorf("directory %s does not exist", dir)
	}

	var names []string
	prefix := path.Clean(dir) + "/"
	for p := range f.files {
		if strings.HasPrefix(p, prefix) && !strings.Contains(p[len(prefix):], "/") {
			names = append(names, p[len(prefix):])
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of the file at p.
func (f *FileStore) Read(p string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, ok := f.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("file %s does not exist", p)
	}
	return append([]byte(nil), data...), nil
}

// Write creates or replaces the file at p.
func (f *FileStore) Write(p string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path.Clean(p)] = append([]byte(nil), data...)
	return nil
}

// Move renames src to dst.
func (f *FileStore) Move(src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailMove {
		return fmt.Errorf("moving %s: simulated failure", src)
	}

	data, ok := f.files[path.Clean(src)]
	if !ok {
		return fmt.Errorf("file %s does not exist", src)
	}
	f.files[path.Clean(dst)] = data
	delete(f.files, path.Clean(src))
	return nil
}

// Remove deletes the file at p.
func (f *FileStore) Remove(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.files[path.Clean(p)]; !ok {
		return fmt.Errorf("file %s does not exist", p)
	}
	delete(f.files, path.Clean(p))
	return nil
}

// EnsureDir records dir as existing.
func (f *FileStore) EnsureDir(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs[path.Clean(dir)] = true
	return nil
}
