package path

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSeparator joins path segments unless a codec is configured otherwise.
const DefaultSeparator = "."

// WildcardSegment is appended to an ancestor path to address its subtree.
const WildcardSegment = "*"

var (
	// ErrInvalidPath is matched by every InvalidPathError.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidSeparator is returned when a codec is built with an empty separator.
	ErrInvalidSeparator = errors.New("separator must not be empty")
)

// InvalidPathError describes a malformed path string.
type InvalidPathError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// Is reports ErrInvalidPath as the sentinel for all path errors.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// Record is a nested attribute tree.
type Record = map[string]any

// Codec splits, joins and flattens paths with a fixed separator.
// The zero value uses DefaultSeparator.
type Codec struct {
	sep string
}

// NewCodec creates a Codec for the given separator.
func NewCodec(sep string) (Codec, error) {
	if sep == "" {
		return Codec{}, ErrInvalidSeparator
	}

	return Codec{sep: sep}, nil
}

// DefaultCodec returns a Codec using DefaultSeparator.
func DefaultCodec() Codec {
	return Codec{sep: DefaultSeparator}
}

// Separator returns the separator in use.
func (c Codec) Separator() string {
	if c.sep == "" {
		return DefaultSeparator
	}

	return c.sep
}

// Split parses a path string into its segments.
// A path without the separator yields a single segment.
func (c Codec) Split(p string) ([]string, error) {
	if p == "" {
		return nil, &InvalidPathError{Path: p, Reason: "empty path"}
	}

	segments := strings.Split(p, c.Separator())
	for _, seg := range segments {
		if seg == "" {
			return nil, &InvalidPathError{Path: p, Reason: "empty segment"}
		}
	}

	return segments, nil
}

// Join builds a path string from segments.
func (c Codec) Join(segments ...string) string {
	return strings.Join(segments, c.Separator())
}

// Parent returns the path with its last segment dropped.
// Returns false for single-segment paths.
func (c Codec) Parent(p string) (string, bool) {
	idx := strings.LastIndex(p, c.Separator())
	if idx <= 0 {
		return "", false
	}

	return p[:idx], true
}

// Ancestors returns every strict ancestor of p, from the immediate parent
// outward to the root segment.
func (c Codec) Ancestors(p string) []string {
	var out []string

	for parent, ok := c.Parent(p); ok; parent, ok = c.Parent(parent) {
		out = append(out, parent)
	}

	return out
}

// Wildcard returns the subtree address of p, e.g. "user" -> "user.*".
func (c Codec) Wildcard(p string) string {
	return p + c.Separator() + WildcardSegment
}
