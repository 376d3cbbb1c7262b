package handler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vvka-141/repofs/pkg/repofs"
)

// Registry maps domain-object kinds to their content handlers.
// Safe for concurrent use by multiple goroutines.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]repofs.ContentHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]repofs.ContentHandler)}
}

// Register adds the handler for kind. Registering a kind twice is a
// configuration error.
func (r *Registry) Register(kind string, h repofs.ContentHandler) error {
	if kind == "" {
		return fmt.Errorf("%w: kind name cannot be empty", repofs.ErrConfiguration)
	}
	if h == nil {
		return fmt.Errorf("%w: nil handler for kind %q", repofs.ErrConfiguration, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[kind]; exists {
		return fmt.Errorf("%w: kind %q registered twice", repofs.ErrConfiguration, kind)
	}
	r.handlers[kind] = h
	return nil
}

// Lookup returns the handler registered for kind.
func (r *Registry) Lookup(kind string) (repofs.ContentHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no handler registered for kind %q", repofs.ErrConfiguration, kind)
	}
	return h, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
