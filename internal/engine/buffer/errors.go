package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrEditsOverlap indicates two edits touch the same bytes.
	ErrEditsOverlap = errors.New("edits overlap")

	// ErrLineOutOfRange indicates a line number past the end of the text.
	ErrLineOutOfRange = errors.New("line out of range")
)
