package sibling

import (
	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// TextObject returns the range of the sibling under the cursor.
//
// The inner object is the trimmed sibling. The around object also takes
// the gap to the next sibling, or to the previous one for the last
// sibling, so that deleting it leaves a well-formed list.
//
// A cursor on a function's return type selects the whole type, unless a
// sibling group inside the type is closer. Inner and around are the same
// range there.
func TextObject(text string, offset int, p profile.Profile, around bool) (buffer.Range, error) {
	a, err := Analyze(text, p)
	if err != nil {
		return buffer.Range{}, err
	}
	if !a.inComment(offset) {
		if r, ok := a.ReturnType(offset); ok {
			pair, found := Enclosing(a.Tokens, offset)
			if !found || pair.Outer().ContainsRange(r) {
				return r, nil
			}
		}
	}
	loc, g, err := a.Resolve(offset)
	if err != nil {
		return buffer.Range{}, err
	}
	return g.Object(loc.Index, around), nil
}

// Object returns the inner or around range of sibling i.
func (g Group) Object(i int, around bool) buffer.Range {
	s := g.Siblings[i]
	if !around || len(g.Siblings) < 2 {
		return s
	}
	if i < len(g.Siblings)-1 {
		return buffer.Range{Start: s.Start, End: g.Siblings[i+1].Start}
	}
	return buffer.Range{Start: g.Siblings[i-1].End, End: s.End}
}
