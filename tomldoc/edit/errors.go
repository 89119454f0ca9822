package edit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by this package matches one of
// them through errors.Is.
var (
	// ErrNotFound is returned when a path segment names nothing and the
	// operation may not create it.
	ErrNotFound = errors.New("edit: path not found")

	// ErrTypeMismatch is returned when a node has the wrong shape for the
	// requested step: descending into a scalar, or storing a block table
	// where only a value fits.
	ErrTypeMismatch = errors.New("edit: type mismatch")

	// ErrBadIndex is returned for a segment that must be an array index and
	// is not one, or an index outside the append/replace range.
	ErrBadIndex = errors.New("edit: bad array index")

	// ErrConversion is returned when a JSON value has no document form.
	ErrConversion = errors.New("edit: value conversion failed")

	// ErrEmptyPath is returned when an operation needs a path and got none.
	ErrEmptyPath = errors.New("edit: empty path")
)

// PathError records where in a path an operation failed.
type PathError struct {
	Path   []string // segments up to and including the failing one
	Err    error    // one of the sentinel errors
	Detail string
}

func (e *PathError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " at %q", strings.Join(e.Path, Separator))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *PathError) Unwrap() error { return e.Err }

func pathError(kind error, path []string, format string, args ...any) *PathError {
	return &PathError{
		Path:   append([]string(nil), path...),
		Err:    kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
