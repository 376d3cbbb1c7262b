package entry

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/vvka-141/repofs/internal/canon"
	"github.com/vvka-141/repofs/internal/files/filesystem"
	"github.com/vvka-141/repofs/internal/logging"
	"github.com/vvka-141/repofs/pkg/repofs"
)

// ContentEntry is an Entry holding typed JSON documents.
//
// The content handler, pretty-print flag and logger may be set on any node;
// unset values are inherited from the nearest ancestor that sets them.
type ContentEntry struct {
	Entry
	parent      *ContentEntry
	handler     repofs.ContentHandler
	prettyPrint *bool
	logger      repofs.Logger
}

// Option configures a ContentEntry at construction.
type Option func(*ContentEntry)

// WithHandler sets the node's content handler.
func WithHandler(h repofs.ContentHandler) Option {
	return func(e *ContentEntry) { e.handler = h }
}

// WithPrettyPrint sets whether JSON written beneath the node is canonicalized.
func WithPrettyPrint(enabled bool) Option {
	return func(e *ContentEntry) { e.prettyPrint = &enabled }
}

// WithLogger sets the sink for inflation diagnostics.
func WithLogger(l repofs.Logger) Option {
	return func(e *ContentEntry) { e.logger = l }
}

// NewRootContentEntry creates a content tree root projecting onto rawPath.
// Panics if fsys is nil.
func NewRootContentEntry(fsys filesystem.FileSystemProvider, rawPath string, opts ...Option) *ContentEntry {
	root := &ContentEntry{}
	root.initRoot(fsys, rawPath)
	for _, opt := range opts {
		opt(root)
	}
	return root
}

// NewChild constructs the named child with its own overrides, bypassing the
// admission policy. Repositories use it to mount per-kind directories.
func (e *ContentEntry) NewChild(name string, opts ...Option) (*ContentEntry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	child := &ContentEntry{parent: e}
	child.initChild(&e.Entry, name)
	for _, opt := range opts {
		opt(child)
	}
	return child, nil
}

// Parent returns the parent content node, or nil for a root.
func (e *ContentEntry) Parent() *ContentEntry { return e.parent }

// CanHaveChild reports whether a raw entry may become a child node: only
// plain files whose name ends in .json are admitted.
func (e *ContentEntry) CanHaveChild(name string, isDir bool) bool {
	return !isDir && strings.HasSuffix(name, repofs.JSONSuffix)
}

// Child constructs the named child if the admission policy allows it.
func (e *ContentEntry) Child(name string) (*ContentEntry, error) {
	if !e.CanHaveChild(name, false) {
		return nil, fmt.Errorf("%w: %s cannot contain %q", repofs.ErrNotAdmitted, e.PathForPrinting(), name)
	}
	return e.NewChild(name)
}

// Children yields one node per admitted raw entry, in filesystem order.
func (e *ContentEntry) Children() iter.Seq2[*ContentEntry, error] {
	return func(yield func(*ContentEntry, error) bool) {
		for name, err := range e.list(e.CanHaveChild) {
			if err != nil {
				yield(nil, err)
				return
			}
			child := &ContentEntry{parent: e}
			child.initChild(&e.Entry, name)
			if !yield(child, nil) {
				return
			}
		}
	}
}

// Handler returns the local content handler or the nearest ancestor's.
// Fails with repofs.ErrConfiguration when no node up to the root sets one.
func (e *ContentEntry) Handler() (repofs.ContentHandler, error) {
	for n := e; n != nil; n = n.parent {
		if n.handler != nil {
			return n.handler, nil
		}
	}
	return nil, fmt.Errorf("%w: no content handler for %s", repofs.ErrConfiguration, e.PathForPrinting())
}

// PrettyPrint returns the local pretty-print flag or the nearest ancestor's,
// defaulting to repofs.DefaultPrettyPrint at the root.
func (e *ContentEntry) PrettyPrint() bool {
	for n := e; n != nil; n = n.parent {
		if n.prettyPrint != nil {
			return *n.prettyPrint
		}
	}
	return repofs.DefaultPrettyPrint
}

func (e *ContentEntry) log() repofs.Logger {
	for n := e; n != nil; n = n.parent {
		if n.logger != nil {
			return n.logger
		}
	}
	return logging.NewConsoleLogger(false)
}

// Object reads the document and inflates it through the resolved handler.
//
// Read, parse and handler failures do not escape: they are logged with the
// node's path and returned as a skipped result carrying the cause. The error
// return is reserved for repofs.ErrConfiguration.
func (e *ContentEntry) Object() (repofs.Inflated, error) {
	h, err := e.Handler()
	if err != nil {
		return repofs.Inflated{}, err
	}

	obj, err := e.inflate(h)
	if err != nil {
		e.log().Error("Could not read %s into an object: %v", e.PathForPrinting(), err)
		return repofs.Inflated{Cause: err}, nil
	}
	return repofs.Inflated{Object: obj}, nil
}

func (e *ContentEntry) inflate(h repofs.ContentHandler) (obj any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: handler panicked: %v", repofs.ErrDataFormat, r)
		}
	}()

	data, err := e.Read()
	if err != nil {
		return nil, err
	}
	value, err := canon.Parse(data)
	if err != nil {
		return nil, err
	}
	obj, err = h.Inflate(value)
	if err != nil {
		return nil, dataFormat("inflate", err)
	}
	return obj, nil
}

// Write stores content, canonicalizing it first when it is non-empty,
// pretty-printing is enabled and the node is a .json document.
// Canonicalization failures wrap repofs.ErrDataFormat (or
// repofs.ErrConfiguration); storage failures wrap repofs.ErrIOFailure.
func (e *ContentEntry) Write(content []byte) error {
	prepared, err := e.Canonicalize(content)
	if err != nil {
		return err
	}
	return e.Entry.Write(prepared)
}

// Canonicalize returns the bytes Write would store for content. Content is
// returned unchanged unless it is non-empty, pretty-printing is enabled and
// the node's name ends in .json; in that case it is parsed, normalized and
// minimized by the handler, then rendered in canonical form.
func (e *ContentEntry) Canonicalize(content []byte) ([]byte, error) {
	if len(content) == 0 || !e.PrettyPrint() || !strings.HasSuffix(e.Name(), repofs.JSONSuffix) {
		return content, nil
	}

	h, err := e.Handler()
	if err != nil {
		return nil, err
	}
	value, err := canon.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("canonicalize %s: %w", e.PathForPrinting(), err)
	}
	if value, err = h.Normalize(value, e); err != nil {
		return nil, dataFormat("normalize "+e.PathForPrinting(), err)
	}
	if value, err = h.Minimize(value, e); err != nil {
		return nil, dataFormat("minimize "+e.PathForPrinting(), err)
	}
	return canon.Pretty(value), nil
}

// CreateChild creates a new JSON document beneath e through the
// canonicalizing write.
func (e *ContentEntry) CreateChild(name string, content []byte) (*ContentEntry, error) {
	if content == nil || !e.CanHaveChild(name, false) {
		return nil, fmt.Errorf("%w: %s cannot contain %q", repofs.ErrNotAdmitted, e.PathForPrinting(), name)
	}
	child, err := e.NewChild(name)
	if err != nil {
		return nil, err
	}
	if child.Exists() {
		return nil, fmt.Errorf("%w: %s", repofs.ErrAlreadyExists, child.PathForPrinting())
	}
	if err := child.Write(content); err != nil {
		return nil, err
	}
	return child, nil
}

// dataFormat tags handler failures as repofs.ErrDataFormat unless the handler
// already classified them.
func dataFormat(op string, err error) error {
	if errors.Is(err, repofs.ErrDataFormat) || errors.Is(err, repofs.ErrConfiguration) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", repofs.ErrDataFormat, op, err)
}

var _ repofs.EntryContext = (*ContentEntry)(nil)
