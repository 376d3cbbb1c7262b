// Package canon parses repository JSON documents and renders them in the
// canonical on-disk form.
//
// Parsing is lenient about // and /* */ comments and trailing commas, which
// hand-edited repository files tend to accumulate. Rendering is strict: two
// space indentation, keys sorted, one trailing newline. Rendering a parsed
// canonical document reproduces it byte for byte.
package canon
