package handler

import "github.com/vvka-141/repofs/pkg/repofs"

// Document is the inflated form of a kind that has no dedicated Go type.
type Document map[string]any

// As extracts a typed object from an inflation result.
// Returns false for skipped results or objects of another type.
func As[T any](result repofs.Inflated) (T, bool) {
	var zero T
	if result.Skipped() {
		return zero, false
	}
	obj, ok := result.Object.(T)
	if !ok {
		return zero, false
	}
	return obj, true
}
