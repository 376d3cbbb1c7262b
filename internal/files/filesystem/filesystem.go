package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider is the raw byte-level storage an entry tree projects onto.
// Implementations must be safe for concurrent readers; concurrent writers to
// the same path are last-writer-wins.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path, creating it if absent.
	// The parent directory must already exist.
	WriteFile(path string, data []byte) error

	// ReadDir reads the directory entries at the given path.
	// Entry order is implementation-defined.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Remove deletes a file or an empty directory.
	Remove(path string) error

	// RemoveAll deletes path and everything beneath it.
	RemoveAll(path string) error
}

const (
	fileMode = 0o644
	dirMode  = 0o755
)
