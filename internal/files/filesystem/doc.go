// Package filesystem provides the file access slicermeta needs to rewrite
// programs in place.
//
// Key interfaces:
//   - FileSystemProvider: read, stat and atomically replace files
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation; WriteFile stages content in a
//     temporary file next to the target and renames it into place
//   - MemoryFileSystem: In-memory implementation for testing, with write
//     failure injection
package filesystem
