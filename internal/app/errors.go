// Package app wires configuration, the swap engine and Lua scripts into the
// sideways commands: file swaps, the JSON-lines server and the script
// runner.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoCursor indicates a swap request without -offset or -pos.
	ErrNoCursor = errors.New("no cursor position given")

	// ErrConflictingCursor indicates both an offset and a position were given.
	ErrConflictingCursor = errors.New("offset and position are mutually exclusive")

	// ErrInvalidPosition indicates a malformed LINE:COL position.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNoInput indicates no file was named and stdin is a terminal.
	ErrNoInput = errors.New("no input")

	// ErrStdinWrite indicates -w was used while reading stdin.
	ErrStdinWrite = errors.New("cannot write back to stdin")

	// ErrClosed indicates use of a closed application.
	ErrClosed = errors.New("application closed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op      string // Operation name (e.g., "swap", "load", "serve")
	Target  string // Target of the operation (e.g., file path, request id)
	Context string // Additional context
	Err     error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// WithContext adds context to the error.
// Safe to call on nil receiver - returns nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	var msg string
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	} else {
		msg = e.Op
	}

	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
