package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BillyFileSystem adapts a billy.Filesystem to FileSystemProvider.
// Paths are interpreted relative to the billy filesystem's own root, which
// makes chrooted and in-memory (memfs) trees usable as repositories.
type BillyFileSystem struct {
	fs billy.Filesystem
}

// NewBillyFileSystem wraps fs.
// Panics if fs is nil.
func NewBillyFileSystem(fs billy.Filesystem) *BillyFileSystem {
	if fs == nil {
		panic("billy filesystem cannot be nil")
	}
	return &BillyFileSystem{fs: fs}
}

func (p *BillyFileSystem) ReadFile(path string) ([]byte, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (p *BillyFileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if _, err := p.fs.Stat(dir); err != nil {
			return err
		}
	}
	return util.WriteFile(p.fs, path, data, fileMode)
}

func (p *BillyFileSystem) ReadDir(path string) ([]FileInfo, error) {
	infos, err := p.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	return infos, nil
}

func (p *BillyFileSystem) Stat(path string) (FileInfo, error) {
	return p.fs.Stat(path)
}

func (p *BillyFileSystem) MkdirAll(path string) error {
	return p.fs.MkdirAll(path, os.FileMode(dirMode))
}

func (p *BillyFileSystem) Remove(path string) error {
	return p.fs.Remove(path)
}

func (p *BillyFileSystem) RemoveAll(path string) error {
	if _, err := p.fs.Stat(path); err != nil {
		return err
	}
	return util.RemoveAll(p.fs, path)
}

var _ FileSystemProvider = (*BillyFileSystem)(nil)
