package lexer

import "github.com/dshills/sideways/internal/engine/buffer"

// Kind classifies a span of source text.
type Kind uint8

const (
	// KindWhitespace is a run of spaces, tabs and newlines.
	KindWhitespace Kind = iota
	// KindIdentifier is a word: letters, digits and underscores.
	KindIdentifier
	// KindLifetime is a lifetime marker such as 'a or 'static.
	KindLifetime
	// KindLiteral is a string or character literal, quotes included.
	KindLiteral
	// KindComment is a line or block comment.
	KindComment
	// KindOperator is any other punctuation, including separators.
	KindOperator
	// KindOpen is an opening delimiter candidate: ( [ { <
	KindOpen
	// KindClose is a closing delimiter candidate: ) ] } >
	KindClose
	// KindPipe is a closure pipe candidate. It may open or close.
	KindPipe
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindIdentifier:
		return "identifier"
	case KindLifetime:
		return "lifetime"
	case KindLiteral:
		return "literal"
	case KindComment:
		return "comment"
	case KindOperator:
		return "operator"
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// Span is a classified range of source text.
// The spans returned by Classify never overlap and cover the whole text.
type Span struct {
	buffer.Range
	Kind Kind
}

// Text returns the source text covered by the span.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// IsTrivia reports whether the span is whitespace or a comment.
func (s Span) IsTrivia() bool {
	return s.Kind == KindWhitespace || s.Kind == KindComment
}

// IsDelimiter reports whether the span is a delimiter candidate.
func (s Span) IsDelimiter() bool {
	return s.Kind == KindOpen || s.Kind == KindClose || s.Kind == KindPipe
}

// At returns the index of the span containing offset, or -1.
// An offset equal to the text length maps to the last span.
func At(spans []Span, offset int) int {
	lo, hi := 0, len(spans)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case offset < spans[mid].Start:
			hi = mid
		case offset >= spans[mid].End:
			lo = mid + 1
		default:
			return mid
		}
	}
	if n := len(spans); n > 0 && offset == spans[n-1].End {
		return n - 1
	}
	return -1
}
