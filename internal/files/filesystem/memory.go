package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryNode struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	nodes map[string]*memoryNode // absolute path -> node
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		nodes: make(map[string]*memoryNode),
		root:  root,
	}
	mfs.nodes[root] = newDirNode(root)
	return mfs
}

// Root returns the absolute root path of the filesystem.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file, creating missing parent directories.
// Relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	mfs.ensureDirectoriesExist(absPath)
	mfs.nodes[absPath] = newFileNode(absPath, []byte(content))
}

// AddDir adds an empty directory, creating missing parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(dirPath)
	mfs.ensureDirectoriesExist(absPath)
	if _, exists := mfs.nodes[absPath]; !exists {
		mfs.nodes[absPath] = newDirNode(absPath)
	}
}

// abs resolves p to a clean absolute virtual path
func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ensureDirectoriesExist creates directory entries for all parent directories.
// Caller must hold the write lock.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath {
		return
	}
	if _, exists := mfs.nodes[dir]; exists {
		return
	}
	mfs.nodes[dir] = newDirNode(dir)
	mfs.ensureDirectoriesExist(dir)
}

func newDirNode(p string) *memoryNode {
	return &memoryNode{
		info: &memoryFileInfo{
			name:    path.Base(p),
			mode:    dirMode | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

func newFileNode(p string, content []byte) *memoryNode {
	return &memoryNode{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(p),
			size:    int64(len(content)),
			mode:    fileMode,
			modTime: time.Now(),
		},
	}
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	node, exists := mfs.nodes[mfs.abs(filePath)]
	if !exists {
		return nil, notExist("read", filePath)
	}
	if node.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	parent, exists := mfs.nodes[path.Dir(absPath)]
	if !exists {
		return notExist("write", filePath)
	}
	if !parent.info.isDir {
		return fmt.Errorf("parent is not a directory: %s", filePath)
	}
	if node, exists := mfs.nodes[absPath]; exists && node.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.nodes[absPath] = newFileNode(absPath, content)
	return nil
}

// ReadDir implements FileSystemProvider.ReadDir.
// Entries are returned sorted by name.
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(dirPath)
	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, notExist("readdir", dirPath)
	}
	if !node.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var result []FileInfo
	for p, child := range mfs.nodes {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, child.info)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	node, exists := mfs.nodes[mfs.abs(statPath)]
	if !exists {
		return nil, notExist("stat", statPath)
	}
	return node.info, nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(dirPath)
	if node, exists := mfs.nodes[absPath]; exists {
		if !node.info.isDir {
			return fmt.Errorf("path is not a directory: %s", dirPath)
		}
		return nil
	}
	mfs.ensureDirectoriesExist(absPath)
	mfs.nodes[absPath] = newDirNode(absPath)
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(removePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(removePath)
	node, exists := mfs.nodes[absPath]
	if !exists {
		return notExist("remove", removePath)
	}
	if node.info.isDir {
		for p := range mfs.nodes {
			if strings.HasPrefix(p, absPath+"/") {
				return fmt.Errorf("directory not empty: %s", removePath)
			}
		}
	}
	delete(mfs.nodes, absPath)
	return nil
}

// RemoveAll implements FileSystemProvider.RemoveAll
func (mfs *MemoryFileSystem) RemoveAll(removePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(removePath)
	if _, exists := mfs.nodes[absPath]; !exists {
		return notExist("remove", removePath)
	}
	for p := range mfs.nodes {
		if p == absPath || strings.HasPrefix(p, absPath+"/") {
			delete(mfs.nodes, p)
		}
	}
	return nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
