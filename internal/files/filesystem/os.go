package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// defaultFileMode is used when the target does not exist yet.
const defaultFileMode fs.FileMode = 0644

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	// os.Stat returns os.FileInfo which implements fs.FileInfo
	return os.Stat(path)
}

// WriteFile writes data to a staging file in the same directory as path and
// renames it over path, so a failed write never truncates the original.
// The permission bits of an existing file are preserved.
func (p *OSFileSystem) WriteFile(path string, data []byte) (err error) {
	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return fmt.Errorf("path is a directory, not a file: %s", path)
		}
		mode = info.Mode().Perm()
	}

	stagingPath := StagingPath(path)
	staging, err := os.OpenFile(stagingPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(stagingPath)
		}
	}()

	if _, err = staging.Write(data); err != nil {
		staging.Close()
		return fmt.Errorf("failed to write staging file: %w", err)
	}
	if err = staging.Sync(); err != nil {
		staging.Close()
		return fmt.Errorf("failed to sync staging file: %w", err)
	}
	if err = staging.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}
	if err = os.Chmod(stagingPath, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(stagingPath, path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// StagingPath returns a unique hidden sibling of path used while writing.
func StagingPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}
