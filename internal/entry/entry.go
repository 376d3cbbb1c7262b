package entry

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/repofs/internal/files/filesystem"
	"github.com/vvka-141/repofs/pkg/repofs"
)

// Entry is a node in the tree, optionally backed by a file or directory.
type Entry struct {
	name    string
	parent  *Entry // non-owning; nil for a root
	rawPath string // empty for a purely virtual node
	fsys    filesystem.FileSystemProvider
}

// NewRoot creates a root entry projecting onto rawPath.
// Panics if fsys is nil.
func NewRoot(fsys filesystem.FileSystemProvider, rawPath string) *Entry {
	root := &Entry{}
	root.initRoot(fsys, rawPath)
	return root
}

func (e *Entry) initRoot(fsys filesystem.FileSystemProvider, rawPath string) {
	if fsys == nil {
		panic("filesystem provider cannot be nil")
	}
	e.name = filepath.Base(rawPath)
	e.rawPath = rawPath
	e.fsys = fsys
}

func (e *Entry) initChild(parent *Entry, name string) {
	e.name = name
	e.parent = parent
	e.fsys = parent.fsys
	if parent.rawPath != "" {
		e.rawPath = filepath.Join(parent.rawPath, name)
	}
}

// Name returns the node's name, unique among its siblings.
func (e *Entry) Name() string { return e.name }

// Parent returns the parent node, or nil for a root.
func (e *Entry) Parent() *Entry { return e.parent }

// RawPath returns the backing path, or "" for a virtual node.
func (e *Entry) RawPath() string { return e.rawPath }

// Root returns the top of the parent chain.
func (e *Entry) Root() *Entry {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Path returns the node's path within the tree: "/" for the root, otherwise
// the ancestor names joined from the root down.
func (e *Entry) Path() string {
	var names []string
	for n := e; n.parent != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return "/" + path.Join(names...)
}

// PathForPrinting returns a human-readable path for diagnostics.
func (e *Entry) PathForPrinting() string {
	if e.rawPath != "" {
		return e.rawPath
	}
	return e.Path()
}

// Child constructs the named child without consulting the filesystem.
func (e *Entry) Child(name string) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	child := &Entry{}
	child.initChild(e, name)
	return child, nil
}

// Children lists the backing directory and yields one child per raw entry,
// in filesystem order. The listing happens when iteration starts, so every
// call re-reads the directory. A listing failure is yielded once as an error.
func (e *Entry) Children() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		for name, err := range e.list(nil) {
			if err != nil {
				yield(nil, err)
				return
			}
			child := &Entry{}
			child.initChild(e, name)
			if !yield(child, nil) {
				return
			}
		}
	}
}

// list yields the names of admitted raw entries beneath e.
func (e *Entry) list(admit func(name string, isDir bool) bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if e.rawPath == "" {
			return
		}
		infos, err := e.fsys.ReadDir(e.rawPath)
		if err != nil {
			yield("", e.classify("list", err))
			return
		}
		for _, info := range infos {
			if admit != nil && !admit(info.Name(), info.IsDir()) {
				continue
			}
			if !yield(info.Name(), nil) {
				return
			}
		}
	}
}

// Read returns the content of the backing file.
// Fails with repofs.ErrNotFound when there is no backing file and
// repofs.ErrIOFailure on any other storage error.
func (e *Entry) Read() ([]byte, error) {
	if e.rawPath == "" {
		return nil, fmt.Errorf("%w: %s has no backing file", repofs.ErrNotFound, e.PathForPrinting())
	}
	data, err := e.fsys.ReadFile(e.rawPath)
	if err != nil {
		return nil, e.classify("read", err)
	}
	return data, nil
}

// Write replaces the backing file's content, creating the file if absent.
// Every failure wraps repofs.ErrIOFailure.
func (e *Entry) Write(content []byte) error {
	if e.rawPath == "" {
		return fmt.Errorf("%w: %s has no backing path", repofs.ErrIOFailure, e.PathForPrinting())
	}
	if err := e.fsys.WriteFile(e.rawPath, content); err != nil {
		return fmt.Errorf("%w: write %s: %w", repofs.ErrIOFailure, e.PathForPrinting(), err)
	}
	return nil
}

// Exists reports whether a backing file or directory is present.
func (e *Entry) Exists() bool {
	if e.rawPath == "" {
		return false
	}
	_, err := e.fsys.Stat(e.rawPath)
	return err == nil
}

// IsDir reports whether the node is backed by a directory.
func (e *Entry) IsDir() bool {
	if e.rawPath == "" {
		return false
	}
	info, err := e.fsys.Stat(e.rawPath)
	return err == nil && info.IsDir()
}

// Delete removes the backing file, or the backing directory when recurse is set.
func (e *Entry) Delete(recurse bool) error {
	if e.rawPath == "" {
		return fmt.Errorf("%w: %s has no backing file", repofs.ErrNotFound, e.PathForPrinting())
	}
	info, err := e.fsys.Stat(e.rawPath)
	if err != nil {
		return e.classify("delete", err)
	}
	if info.IsDir() {
		if !recurse {
			return fmt.Errorf("%w: %s", repofs.ErrMustDeleteRecursively, e.PathForPrinting())
		}
		err = e.fsys.RemoveAll(e.rawPath)
	} else {
		err = e.fsys.Remove(e.rawPath)
	}
	if err != nil {
		return e.classify("delete", err)
	}
	return nil
}

// CreateChild creates the named child on disk: a directory when content is
// nil, otherwise a file holding content.
func (e *Entry) CreateChild(name string, content []byte) (*Entry, error) {
	child, err := e.Child(name)
	if err != nil {
		return nil, err
	}
	if child.Exists() {
		return nil, fmt.Errorf("%w: %s", repofs.ErrAlreadyExists, child.PathForPrinting())
	}
	if content == nil {
		if child.rawPath == "" {
			return nil, fmt.Errorf("%w: %s has no backing path", repofs.ErrIOFailure, child.PathForPrinting())
		}
		if err := e.fsys.MkdirAll(child.rawPath); err != nil {
			return nil, fmt.Errorf("%w: mkdir %s: %w", repofs.ErrIOFailure, child.PathForPrinting(), err)
		}
		return child, nil
	}
	if err := child.Write(content); err != nil {
		return nil, err
	}
	return child, nil
}

// classify maps a raw filesystem error onto the entry error kinds.
func (e *Entry) classify(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s %s: %w", repofs.ErrNotFound, op, e.PathForPrinting(), err)
	}
	return fmt.Errorf("%w: %s %s: %w", repofs.ErrIOFailure, op, e.PathForPrinting(), err)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid name %q", repofs.ErrNotAdmitted, name)
	}
	return nil
}
