package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/repofs/internal/checksum"
	"github.com/vvka-141/repofs/internal/entry"
	"github.com/vvka-141/repofs/internal/files/filesystem"
	"github.com/vvka-141/repofs/internal/handler"
	"github.com/vvka-141/repofs/internal/logging"
	"github.com/vvka-141/repofs/pkg/repofs"
)

// Options configures how a repository is opened.
// PrettyPrint is applied as given; callers holding a RepositoryConfig pass
// its EffectivePrettyPrint.
type Options struct {
	PrettyPrint bool
	Workers     int
	Logger      repofs.Logger
}

// Repository is an opened repository root with its kind directories mounted.
type Repository struct {
	root    *entry.ContentEntry
	kinds   map[string]*entry.ContentEntry
	names   []string
	workers int
	logger  repofs.Logger
	calc    checksum.Calculator
}

// Result is the inflation outcome of one document.
type Result struct {
	Kind     string
	Entry    *entry.ContentEntry
	Inflated repofs.Inflated
}

// Path returns the document's human-readable path.
func (r Result) Path() string { return r.Entry.PathForPrinting() }

// FormatResult describes one document visited by Format.
type FormatResult struct {
	Kind    string
	Entry   *entry.ContentEntry
	Changed bool
	// Checksum is the raw digest of the canonical bytes; empty when Err is set.
	Checksum string
	Err      error
}

// Path returns the document's human-readable path.
func (r FormatResult) Path() string { return r.Entry.PathForPrinting() }

type leaf struct {
	kind  string
	entry *entry.ContentEntry
}

// Open mounts rawPath as a repository with one kind directory per kind in
// the registry. Worker counts outside 1..repofs.MaxWorkers fall back to
// repofs.DefaultWorkers.
func Open(fsys filesystem.FileSystemProvider, rawPath string, registry *handler.Registry, opts Options) (*Repository, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: handler registry is required", repofs.ErrConfiguration)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	workers := opts.Workers
	if workers < 1 || workers > repofs.MaxWorkers {
		workers = repofs.DefaultWorkers
	}

	root := entry.NewRootContentEntry(fsys, rawPath,
		entry.WithPrettyPrint(opts.PrettyPrint),
		entry.WithLogger(logger),
	)
	if !root.IsDir() {
		return nil, fmt.Errorf("%w: repository %s", repofs.ErrNotFound, root.PathForPrinting())
	}

	repo := &Repository{
		root:    root,
		kinds:   make(map[string]*entry.ContentEntry),
		workers: workers,
		logger:  logger,
		calc:    checksum.New(),
	}
	for _, kind := range registry.Kinds() {
		h, err := registry.Lookup(kind)
		if err != nil {
			return nil, err
		}
		dir, err := root.NewChild(kind, entry.WithHandler(h))
		if err != nil {
			return nil, fmt.Errorf("%w: kind %q: %w", repofs.ErrConfiguration, kind, err)
		}
		repo.kinds[kind] = dir
		repo.names = append(repo.names, kind)
	}
	return repo, nil
}

// Root returns the repository's root node.
func (r *Repository) Root() *entry.ContentEntry { return r.root }

// Kinds returns the mounted kinds in sorted order.
func (r *Repository) Kinds() []string {
	return append([]string(nil), r.names...)
}

// Kind returns the directory node for kind.
func (r *Repository) Kind(kind string) (*entry.ContentEntry, error) {
	dir, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", repofs.ErrNotFound, kind)
	}
	return dir, nil
}

// Document returns the node for name inside the kind directory.
// The document need not exist.
func (r *Repository) Document(kind, name string) (*entry.ContentEntry, error) {
	dir, err := r.Kind(kind)
	if err != nil {
		return nil, err
	}
	return dir.Child(name)
}

// leaves lists every document of every kind. Kind directories that do not
// exist are skipped.
func (r *Repository) leaves(ctx context.Context) ([]leaf, error) {
	var out []leaf
	for _, kind := range r.names {
		dir := r.kinds[kind]
		if !dir.Exists() {
			r.logger.Verbose("Skipping kind %s: %s does not exist", kind, dir.PathForPrinting())
			continue
		}
		for child, err := range dir.Children() {
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", dir.PathForPrinting(), err)
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, leaf{kind: kind, entry: child})
		}
	}
	return out, nil
}

// Walk inflates every document and calls fn once per document in path
// order. Documents that fail to inflate are reported as skipped results.
// Walk stops at the first configuration error, listing failure,
// cancellation or error returned by fn.
func (r *Repository) Walk(ctx context.Context, fn func(Result) error) error {
	leaves, err := r.leaves(ctx)
	if err != nil {
		return err
	}

	results := make([]Result, len(leaves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, l := range leaves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			inflated, err := l.entry.Object()
			if err != nil {
				return err
			}
			results[i] = Result{Kind: l.kind, Entry: l.entry, Inflated: inflated}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Entry.Path() < results[j].Entry.Path()
	})
	for _, res := range results {
		if err := fn(res); err != nil {
			return err
		}
	}
	return nil
}

// Format canonicalizes every document. With check set nothing is written and
// the results only report which documents would change. Per-document read,
// parse and handler failures are reported in FormatResult.Err; configuration
// errors abort.
func (r *Repository) Format(ctx context.Context, check bool) ([]FormatResult, error) {
	leaves, err := r.leaves(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]FormatResult, len(leaves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, l := range leaves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := r.format(l, check)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Entry.Path() < results[j].Entry.Path()
	})
	return results, nil
}

func (r *Repository) format(l leaf, check bool) (FormatResult, error) {
	res := FormatResult{Kind: l.kind, Entry: l.entry}

	raw, err := l.entry.Read()
	if err != nil {
		res.Err = err
		return res, nil
	}
	canonical, err := l.entry.Canonicalize(raw)
	if err != nil {
		if errors.Is(err, repofs.ErrConfiguration) {
			return res, err
		}
		r.logger.Error("Could not format %s: %v", l.entry.PathForPrinting(), err)
		res.Err = err
		return res, nil
	}

	res.Checksum = r.calc.CalculateRaw(canonical)
	res.Changed = !bytes.Equal(raw, canonical)
	if res.Changed && !check {
		if err := l.entry.Entry.Write(canonical); err != nil {
			res.Err = err
			return res, nil
		}
		r.logger.Verbose("Formatted %s", l.entry.PathForPrinting())
	}
	return res, nil
}
