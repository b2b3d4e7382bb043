package driven

// FileStore abstracts the filesystem capability the core needs: the
// documents directory holding original files and the temp directory
// holding staged uploads.
type FileStore interface {
	// List returns the file names (not paths) directly inside dir.
	List(dir string) ([]string, error)

	// Read returns the contents of the file at path.
	Read(path string) ([]byte, error)

	// Write creates or replaces the file at path.
	Write(path string, data []byte) error

	// Move renames src to dst, replacing any existing file.
	Move(src, dst string) error

	// Remove deletes the file at path.
	Remove(path string) error

	// EnsureDir creates dir and any missing parents.
	EnsureDir(dir string) error
}
