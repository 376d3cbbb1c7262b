package repofs

// EntryContext is the view of a tree node a content handler receives while
// normalizing or minimizing a document.
type EntryContext interface {
	// Name returns the node's file name, including the .json suffix.
	Name() string

	// PathForPrinting returns a human-readable path for diagnostics.
	PathForPrinting() string
}

// ContentHandler converts between generic JSON values and typed objects for
// one kind of domain object. Values are the generic shapes produced by a JSON
// parser: map[string]any, []any, string, int64, float64, bool and nil.
//
// Implementations must be pure and safe for concurrent use.
type ContentHandler interface {
	// Inflate converts a parsed JSON value into a typed object.
	Inflate(value any) (any, error)

	// Normalize fills defaults and canonical shape into value.
	Normalize(value any, entry EntryContext) (any, error)

	// Minimize strips fields equal to their defaults from value.
	Minimize(value any, entry EntryContext) (any, error)
}

// Inflated is the outcome of inflating a single document.
// Exactly one of Object or Cause is meaningful: a non-nil Cause marks the
// document as skipped.
type Inflated struct {
	Object any
	Cause  error
}

// Skipped reports whether the document could not be inflated.
func (i Inflated) Skipped() bool {
	return i.Cause != nil
}
