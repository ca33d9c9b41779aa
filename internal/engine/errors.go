package engine

import (
	"errors"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/sibling"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates a cursor offset or point outside the text.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrUnknownFiletype indicates no profile is registered for the filetype.
	ErrUnknownFiletype = errors.New("unknown filetype")

	// ErrFiletypeDisabled indicates the filetype is registered but swapping
	// is not enabled for it.
	ErrFiletypeDisabled = errors.New("filetype disabled")
)

// Sibling errors, re-exported so callers need only this package.
var (
	ErrUnbalancedDelimiters    = sibling.ErrUnbalancedDelimiters
	ErrCursorNotInSiblingGroup = sibling.ErrCursorNotInSiblingGroup
	ErrNoAdjacentSibling       = sibling.ErrNoAdjacentSibling
	ErrUnterminated            = sibling.ErrUnterminated
)

// IsBenign reports whether err is an expected no-op outcome.
func IsBenign(err error) bool {
	return sibling.IsBenign(err)
}

// ErrorKind returns a stable name for err.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownFiletype):
		return "UnknownFiletype"
	case errors.Is(err, ErrFiletypeDisabled):
		return "FiletypeDisabled"
	case errors.Is(err, buffer.ErrLineOutOfRange):
		return "OffsetOutOfRange"
	}
	return sibling.ErrorKind(err)
}
