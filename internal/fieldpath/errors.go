// Package fieldpath resolves dotted field paths such as "experience.0.bullets.2"
// against résumé documents.
package fieldpath

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for empty paths or empty segments.
	ErrMalformed = errors.New("malformed path")
	// ErrUnknownField is returned when a segment names nothing in the data model.
	ErrUnknownField = errors.New("unknown field")
	// ErrOutOfRange is returned when a list index is not an index of the current list.
	ErrOutOfRange = errors.New("index out of range")
	// ErrShape is returned when an intermediate value is neither a mapping nor a list.
	ErrShape = errors.New("value is not traversable")
)

// ResolveError reports which segment of a path failed to resolve.
type ResolveError struct {
	Path    string
	Segment string
	Cause   error
}

func (e *ResolveError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("resolve %q: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("resolve %q at %q: %v", e.Path, e.Segment, e.Cause)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

func resolveErr(path, segment string, cause error) error {
	return &ResolveError{Path: path, Segment: segment, Cause: cause}
}
