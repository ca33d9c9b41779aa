package lexer

import (
	"errors"
	"fmt"
)

// ErrUnterminated indicates a literal or block comment that runs to the end
// of the text.
var ErrUnterminated = errors.New("unterminated literal or comment")

// PositionError attaches a byte offset to an error.
type PositionError struct {
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}
