// Package filesystem provides the raw storage abstraction beneath the entry tree.
//
// The entry tree never touches the OS directly: it lists, reads, writes and
// removes through FileSystemProvider, which keeps tree logic testable against
// in-memory storage while production code uses the real disk.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - BillyFileSystem: Adapter over any go-billy filesystem (memfs, osfs, chroot)
//
// Every implementation reports a missing path with an error wrapping
// fs.ErrNotExist so callers can classify it with errors.Is.
package filesystem
