package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider abstracts the files a batch reads and rewrites.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of path. Implementations must either
	// leave the previous content intact or fully replace it.
	WriteFile(path string, data []byte) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
