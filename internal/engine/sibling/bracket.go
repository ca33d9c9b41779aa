package sibling

import "github.com/dshills/sideways/internal/engine/buffer"

// Pair is a matched open and close token.
type Pair struct {
	Open  Token
	Close Token
}

// Interior returns the range strictly between the delimiters.
func (p Pair) Interior() buffer.Range {
	return buffer.Range{Start: p.Open.End, End: p.Close.Start}
}

// Outer returns the range including the delimiters.
func (p Pair) Outer() buffer.Range {
	return buffer.Range{Start: p.Open.Start, End: p.Close.End}
}

// IsGroup reports whether the pair delimits a sibling group.
func (p Pair) IsGroup() bool {
	return p.Open.Role == RoleGroupOpen
}

// Encloses reports whether offset lies within the interior. Both interior
// boundaries count as inside.
func (p Pair) Encloses(offset int) bool {
	return offset >= p.Open.End && offset <= p.Close.Start
}

// Pairs returns every matched pair in order of the opening token.
func Pairs(tokens []Token) []Pair {
	var pairs []Pair
	for _, tok := range tokens {
		if !tok.Role.IsOpen() || tok.Match < 0 {
			continue
		}
		pairs = append(pairs, Pair{Open: tok, Close: tokens[tok.Match]})
	}
	return pairs
}

// Enclosing returns the innermost sibling group whose interior contains
// offset. Blocks are transparent: a cursor inside a block body resolves to
// the group around the block.
func Enclosing(tokens []Token, offset int) (Pair, bool) {
	var best Pair
	found := false
	for _, pr := range Pairs(tokens) {
		if pr.Open.Start >= offset {
			break
		}
		if !pr.IsGroup() || !pr.Encloses(offset) {
			continue
		}
		best = pr
		found = true
	}
	return best, found
}
