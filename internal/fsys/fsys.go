package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toolsmith-labs/toolsmith/internal/platform"
	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

// FS is the narrow file-system surface the generation pipeline touches.
// Production code uses Disk; tests point it at a temp directory.
type FS interface {
	MkdirAll(path string, mode os.FileMode) error
	WriteFile(path string, data []byte, mode os.FileMode) error
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	Chmod(path string, mode os.FileMode) error
	Size(path string) (int64, error)
}

// Disk implements FS on the real file system.
type Disk struct{}

// NewDisk returns an FS backed by the operating system.
func NewDisk() Disk { return Disk{} }

// MkdirAll creates the directory and any missing parents.
func (Disk) MkdirAll(path string, mode os.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories transparently
// and overwriting any existing file.
func (Disk) WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the contents of path.
func (Disk) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path exists as a file or directory.
func (Disk) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Chmod applies permissions where the platform supports them.
func (Disk) Chmod(path string, mode os.FileMode) error {
	if err := platform.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}

// Size returns the byte size of the file at path.
func (Disk) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stating file %s: %w", path, err)
	}
	return info.Size(), nil
}
