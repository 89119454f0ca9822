package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned for an operation list or patch that
	// cannot be parsed, and for a backing document that is not valid.
	ErrMalformedInput = errors.New("batch: malformed input")

	// ErrTestFailed is returned when a test operation finds a different
	// value than expected.
	ErrTestFailed = errors.New("batch: test failed")
)

// OpError records which operation aborted a batch.
type OpError struct {
	Index int    // position of the operation in the plan
	Op    OpType // kind of the operation
	Path  string // where it acted
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
