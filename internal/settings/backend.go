package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend is durable storage for the encoded settings record.
type Backend interface {
	// Load returns the stored record. It returns an error wrapping
	// fs.ErrNotExist when nothing has been stored yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored record.
	Save(ctx context.Context, data []byte) error
}

// FileBackend stores the record in a single file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend. A leading ~ expands to the home
// directory.
func NewFileBackend(path string) (*FileBackend, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileBackend{path: path}, nil
}

// Path returns the resolved file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load implements Backend.
func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("settings: cannot read %s: %w", b.path, err)
	}
	return data, nil
}

// Save implements Backend. The file is replaced atomically.
func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("settings: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("settings: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings: cannot write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("settings: cannot replace %s: %w", b.path, err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("settings: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

var _ Backend = (*FileBackend)(nil)
