package sibling

import (
	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// Location is a cursor position relative to the sibling it belongs to.
type Location struct {
	// Index is the sibling index within the group.
	Index int

	// Offset is the distance from the sibling start, clamped to the
	// sibling length.
	Offset int
}

// Locate maps an absolute offset inside the group to a sibling location.
// A cursor in gap text belongs to the nearest sibling whose trailing
// separator is at or after it.
func (g Group) Locate(offset int) (Location, error) {
	n := len(g.Siblings)
	if n == 0 {
		return Location{}, ErrCursorNotInSiblingGroup
	}
	idx := n - 1
	for i := 0; i < n-1; i++ {
		if offset <= g.Separators[i] {
			idx = i
			break
		}
	}
	s := g.Siblings[idx]
	return Location{Index: idx, Offset: s.Clamp(offset) - s.Start}, nil
}

// Project maps a location back to an absolute offset in a layout of
// sibling ranges.
func Project(layout []buffer.Range, loc Location) int {
	s := layout[loc.Index]
	return s.Clamp(s.Start + loc.Offset)
}

// Resolve finds the sibling group around offset and the cursor's location
// within it.
func (a *Analysis) Resolve(offset int) (Location, Group, error) {
	if offset < 0 || offset > len(a.Text) {
		return Location{}, Group{}, &PositionError{Offset: offset, Err: ErrOffsetOutOfRange}
	}
	if a.inComment(offset) {
		return Location{}, Group{}, ErrCursorNotInSiblingGroup
	}
	pair, ok := Enclosing(a.Tokens, offset)
	if !ok {
		return Location{}, Group{}, ErrCursorNotInSiblingGroup
	}
	g := a.Segment(pair)
	loc, err := g.Locate(offset)
	if err != nil {
		return Location{}, Group{}, err
	}
	return loc, g, nil
}

// Resolve analyzes text and resolves offset in one step.
func Resolve(text string, offset int, p profile.Profile) (Location, Group, error) {
	a, err := Analyze(text, p)
	if err != nil {
		return Location{}, Group{}, err
	}
	return a.Resolve(offset)
}
