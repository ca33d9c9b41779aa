package sibling

import (
	"errors"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/lexer"
)

// Errors returned by sibling operations. None of them changes the text.
var (
	// ErrUnbalancedDelimiters indicates a structural delimiter without a
	// matching partner.
	ErrUnbalancedDelimiters = errors.New("unbalanced delimiters")

	// ErrCursorNotInSiblingGroup indicates the cursor is outside every
	// sibling group, or inside a comment.
	ErrCursorNotInSiblingGroup = errors.New("cursor not in a sibling group")

	// ErrNoAdjacentSibling indicates there is no sibling in the requested
	// direction. This is an expected outcome, not a failure.
	ErrNoAdjacentSibling = errors.New("no adjacent sibling")

	// ErrOffsetOutOfRange indicates a cursor offset outside the text.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrUnterminated indicates a literal or block comment that never closes.
	ErrUnterminated = lexer.ErrUnterminated
)

// PositionError attaches the offending offset to an error.
type PositionError = lexer.PositionError

// IsBenign reports whether err is an expected no-op outcome.
func IsBenign(err error) bool {
	return errors.Is(err, ErrNoAdjacentSibling)
}

// ErrorKind returns a stable name for the error, for hosts that report
// status across a process boundary.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnbalancedDelimiters):
		return "UnbalancedDelimiters"
	case errors.Is(err, ErrCursorNotInSiblingGroup):
		return "CursorNotInSiblingGroup"
	case errors.Is(err, ErrNoAdjacentSibling):
		return "NoAdjacentSibling"
	case errors.Is(err, ErrUnterminated):
		return "Unterminated"
	case errors.Is(err, ErrOffsetOutOfRange):
		return "OffsetOutOfRange"
	default:
		return "Internal"
	}
}
