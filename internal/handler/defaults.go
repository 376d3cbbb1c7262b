package handler

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/ohler55/ojg/jp"

	"github.com/vvka-141/repofs/internal/canon"
	"github.com/vvka-141/repofs/pkg/repofs"
)

// Spec describes the canonical shape of one kind of document.
type Spec struct {
	// Kind names the domain-object kind, used in error messages.
	Kind string

	// Defaults maps JSONPath expressions to the value a field takes when absent.
	Defaults map[string]any

	// NameField, if set, is a top-level field derived from the file name
	// (without .json) when absent and dropped when it matches.
	NameField string
}

type pathDefault struct {
	path  string
	expr  jp.Expr
	value any
}

// Defaults is a content handler driven by a Spec. Inflated objects are of
// type T; struct types are checked against their `validate` tags.
// Defaults is immutable and safe for concurrent use.
type Defaults[T any] struct {
	kind      string
	defaults  []pathDefault
	nameField string
	validate  *validator.Validate
}

// NewDefaults builds a handler from spec. Invalid JSONPath expressions or
// default values wrap repofs.ErrConfiguration.
func NewDefaults[T any](spec Spec) (*Defaults[T], error) {
	h := &Defaults[T]{
		kind:      spec.Kind,
		nameField: spec.NameField,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}

	paths := make([]string, 0, len(spec.Defaults))
	for p := range spec.Defaults {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		expr, err := jp.ParseString(p)
		if err != nil {
			return nil, fmt.Errorf("%w: kind %q: invalid jsonpath '%s': %w", repofs.ErrConfiguration, spec.Kind, p, err)
		}
		value, err := canon.Generic(spec.Defaults[p])
		if err != nil {
			return nil, fmt.Errorf("%w: kind %q: default for '%s': %w", repofs.ErrConfiguration, spec.Kind, p, err)
		}
		h.defaults = append(h.defaults, pathDefault{path: p, expr: expr, value: value})
	}
	return h, nil
}

// Kind returns the domain-object kind this handler serves.
func (h *Defaults[T]) Kind() string { return h.kind }

// Normalize fills absent defaults and the derived name field.
func (h *Defaults[T]) Normalize(value any, entry repofs.EntryContext) (any, error) {
	doc, err := h.object(value)
	if err != nil {
		return nil, err
	}

	if err := h.fill(doc); err != nil {
		return nil, err
	}
	if name, ok := h.derivedName(entry); ok {
		if _, present := doc[h.nameField]; !present {
			doc[h.nameField] = name
		}
	}
	return doc, nil
}

// Minimize drops fields equal to their defaults and a name field equal to
// the derived name.
func (h *Defaults[T]) Minimize(value any, entry repofs.EntryContext) (any, error) {
	doc, err := h.object(value)
	if err != nil {
		return nil, err
	}

	for _, d := range h.defaults {
		found := d.expr.Get(doc)
		if len(found) == 1 && canon.Equal(found[0], d.value) {
			if err := d.expr.Del(doc); err != nil {
				return nil, fmt.Errorf("%w: kind %q: remove '%s': %w", repofs.ErrDataFormat, h.kind, d.path, err)
			}
			if err := pruneEmptyParents(doc, d.expr); err != nil {
				return nil, fmt.Errorf("%w: kind %q: remove parents of '%s': %w", repofs.ErrDataFormat, h.kind, d.path, err)
			}
		}
	}
	if name, ok := h.derivedName(entry); ok {
		if current, present := doc[h.nameField]; present && current == name {
			delete(doc, h.nameField)
		}
	}
	return doc, nil
}

// Inflate fills defaults, decodes the document into T and validates it.
func (h *Defaults[T]) Inflate(value any) (any, error) {
	doc, err := h.object(value)
	if err != nil {
		return nil, err
	}
	if err := h.fill(doc); err != nil {
		return nil, err
	}

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: kind %q: %w", repofs.ErrConfiguration, h.kind, err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: kind %q: %w", repofs.ErrDataFormat, h.kind, err)
	}

	if isStruct(out) {
		if err := h.validate.Struct(out); err != nil {
			return nil, fmt.Errorf("%w: kind %q: %w", repofs.ErrDataFormat, h.kind, err)
		}
	}
	return out, nil
}

// object returns a private deep copy of value, which must be a JSON object.
func (h *Defaults[T]) object(value any) (map[string]any, error) {
	if _, ok := value.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: kind %q: expected a JSON object, got %s", repofs.ErrDataFormat, h.kind, jsonType(value))
	}
	copied, err := canon.Generic(value)
	if err != nil {
		return nil, err
	}
	return copied.(map[string]any), nil
}

func (h *Defaults[T]) fill(doc map[string]any) error {
	for _, d := range h.defaults {
		if len(d.expr.Get(doc)) > 0 {
			continue
		}
		value, err := canon.Generic(d.value)
		if err != nil {
			return err
		}
		if err := d.expr.Set(doc, value); err != nil {
			return fmt.Errorf("%w: kind %q: set '%s': %w", repofs.ErrDataFormat, h.kind, d.path, err)
		}
	}
	return nil
}

// pruneEmptyParents deletes the objects enclosing expr's target, innermost
// first, while they are empty. The root is never removed.
func pruneEmptyParents(doc map[string]any, expr jp.Expr) error {
	for parent := expr[:len(expr)-1]; len(parent) > 1; parent = parent[:len(parent)-1] {
		found := parent.Get(doc)
		if len(found) != 1 {
			return nil
		}
		obj, ok := found[0].(map[string]any)
		if !ok || len(obj) > 0 {
			return nil
		}
		if err := parent.Del(doc); err != nil {
			return err
		}
	}
	return nil
}

func (h *Defaults[T]) derivedName(entry repofs.EntryContext) (string, bool) {
	if h.nameField == "" || entry == nil {
		return "", false
	}
	name := strings.TrimSuffix(entry.Name(), repofs.JSONSuffix)
	return name, name != ""
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

var _ repofs.ContentHandler = (*Defaults[Document])(nil)
