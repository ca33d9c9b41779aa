package profile

import "errors"

// Errors returned by profile operations.
var (
	// ErrNoName indicates a profile without a filetype name.
	ErrNoName = errors.New("profile has no name")

	// ErrInvalidBracket indicates a malformed bracket pair.
	ErrInvalidBracket = errors.New("invalid bracket pair")

	// ErrInvalidQuote indicates a malformed quote definition.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrInvalidComment indicates a malformed comment definition.
	ErrInvalidComment = errors.New("invalid comment syntax")

	// ErrUnknownBase indicates a definition extends a profile that does not exist.
	ErrUnknownBase = errors.New("unknown base profile")

	// ErrUnknownFormat indicates a profile file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown profile format")
)
