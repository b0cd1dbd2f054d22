package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu          sync.RWMutex
	files       map[string]*memoryFile
	writeErrors map[string]error
	writes      []string
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files:       make(map[string]*memoryFile),
		writeErrors: make(map[string]error),
	}
}

// normalize maps paths to forward-slash, cleaned keys (virtual filesystem convention).
func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(normalize(filePath), []byte(content), modTime)
}

func (mfs *MemoryFileSystem) put(key string, content []byte, modTime time.Time) {
	mfs.files[key] = &memoryFile{
		content: append([]byte(nil), content...),
		info: &memoryFileInfo{
			name:    path.Base(key),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
}

// FailWrites makes every later WriteFile to filePath return err.
func (mfs *MemoryFileSystem) FailWrites(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErrors[normalize(filePath)] = err
}

// Content returns the current content of a file.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, ok := mfs.files[normalize(filePath)]
	if !ok {
		return "", false
	}
	return string(file.content), true
}

// Paths returns every stored path in sorted order.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Writes returns the paths written so far, in order.
func (mfs *MemoryFileSystem) Writes() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return append([]string(nil), mfs.writes...)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[normalize(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), file.content...), nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	key := normalize(filePath)
	if err := mfs.writeErrors[key]; err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	mfs.put(key, data, time.Now())
	mfs.writes = append(mfs.writes, key)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[normalize(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return file.info, nil
}
