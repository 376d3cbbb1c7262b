// Package files groups the storage layer beneath the entry tree.
//
// The filesystem sub-package defines FileSystemProvider, the raw capability
// an entry tree reads and writes through, with three implementations:
//   - OSFileSystem: the local disk, used by the repofs command
//   - MemoryFileSystem: an in-memory tree for tests
//   - BillyFileSystem: any go-billy filesystem (memfs, osfs, chroot)
//
// # Usage
//
//	import "github.com/vvka-141/repofs/internal/files/filesystem"
//
//	fsys := filesystem.NewOSFileSystem()
//	root := entry.NewRootContentEntry(fsys, "./chef-repo")
package files
