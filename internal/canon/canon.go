package canon

import (
	"bytes"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/jsonc"

	"github.com/vvka-141/repofs/pkg/repofs"
)

// Parse converts raw document bytes into a generic JSON value.
// The result is built from map[string]any, []any, string, int64, float64,
// bool and nil. Malformed, empty or non-UTF-8 input wraps repofs.ErrDataFormat.
func Parse(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8", repofs.ErrDataFormat)
	}
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, fmt.Errorf("%w: empty document", repofs.ErrDataFormat)
	}

	value, err := oj.Parse(stripped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repofs.ErrDataFormat, err)
	}
	return value, nil
}

// Pretty renders value in canonical form.
func Pretty(value any) []byte {
	opts := ojg.DefaultOptions
	opts.Indent = repofs.PrettyIndent
	opts.Sort = true
	return append([]byte(oj.JSON(value, &opts)), '\n')
}

// Generic re-encodes an arbitrary Go value (for example one decoded from
// YAML) into the shapes Parse produces, so it can be compared with parsed
// documents.
func Generic(value any) (any, error) {
	return Parse(Pretty(value))
}

// Equal reports whether two values encode to the same JSON document.
func Equal(a, b any) bool {
	ga, err := Generic(a)
	if err != nil {
		return false
	}
	gb, err := Generic(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(ga, gb)
}
