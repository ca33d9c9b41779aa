package sibling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// Direction selects the neighbor to exchange with.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ParseDirection parses "left" or "right", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return Left, fmt.Errorf("invalid direction %q", s)
	}
}

// Options configures a swap.
type Options struct {
	// Wrap exchanges the first and last siblings when the requested
	// neighbor does not exist.
	Wrap bool
}

// Option modifies Options.
type Option func(*Options)

// WithWrap sets whether swaps wrap around at the group boundaries.
func WithWrap(wrap bool) Option {
	return func(o *Options) {
		o.Wrap = wrap
	}
}

// Result is the outcome of a swap.
type Result struct {
	// Text is the rewritten text, or the input when nothing changed.
	Text string

	// Cursor is the new cursor offset.
	Cursor int

	// Changed is false when the swap was a no-op.
	Changed bool

	// From and To are the sibling indices that were exchanged. From is the
	// sibling under the cursor.
	From, To int

	// Group is the sibling layout after the swap.
	Group Group
}

// Swap exchanges the sibling under the cursor with its neighbor in dir.
//
// On ErrNoAdjacentSibling the result carries the unchanged text and cursor
// and may be used as is. Any other error leaves the result zero.
func Swap(text string, offset int, dir Direction, p profile.Profile, opts ...Option) (Result, error) {
	a, err := Analyze(text, p)
	if err != nil {
		return Result{}, err
	}
	loc, g, err := a.Resolve(offset)
	if err != nil {
		return Result{}, err
	}
	res, err := Exchange(text, g, loc, dir, opts...)
	if errors.Is(err, ErrNoAdjacentSibling) {
		res.Cursor = offset
	}
	return res, err
}

// Exchange swaps the sibling at loc with its neighbor in dir within an
// already segmented group.
func Exchange(text string, g Group, loc Location, dir Direction, opts ...Option) (Result, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	unchanged := Result{
		Text:   text,
		Cursor: Project(g.Siblings, loc),
		From:   loc.Index,
		To:     loc.Index,
		Group:  g,
	}

	to, ok := neighbor(g.Len(), loc.Index, dir, o.Wrap)
	if !ok {
		return unchanged, ErrNoAdjacentSibling
	}

	a, b := loc.Index, to
	if a > b {
		a, b = b, a
	}
	ra, rb := g.Siblings[a], g.Siblings[b]
	ta, tb := ra.Slice(text), rb.Slice(text)

	out, err := buffer.ApplyEdits(text, []buffer.Edit{
		buffer.NewEdit(ra, tb),
		buffer.NewEdit(rb, ta),
	})
	if err != nil {
		return Result{}, err
	}

	moved := relayout(g, a, b)
	return Result{
		Text:    out,
		Cursor:  Project(moved.Siblings, Location{Index: to, Offset: loc.Offset}),
		Changed: out != text,
		From:    loc.Index,
		To:      to,
		Group:   moved,
	}, nil
}

// neighbor returns the sibling index adjacent to i in dir.
func neighbor(n, i int, dir Direction, wrap bool) (int, bool) {
	if n < 2 {
		return i, false
	}
	switch dir {
	case Left:
		if i > 0 {
			return i - 1, true
		}
		if wrap {
			return n - 1, true
		}
	case Right:
		if i < n-1 {
			return i + 1, true
		}
		if wrap {
			return 0, true
		}
	}
	return i, false
}

// relayout computes sibling ranges after siblings a and b (a < b) exchange
// text. Everything between them shifts by the length difference.
func relayout(g Group, a, b int) Group {
	ra, rb := g.Siblings[a], g.Siblings[b]
	delta := rb.Len() - ra.Len()

	out := Group{
		Pair:       g.Pair,
		Siblings:   make([]buffer.Range, len(g.Siblings)),
		Separators: make([]int, len(g.Separators)),
	}
	copy(out.Siblings, g.Siblings)
	copy(out.Separators, g.Separators)

	out.Siblings[a] = buffer.Range{Start: ra.Start, End: ra.Start + rb.Len()}
	for i := a + 1; i < b; i++ {
		out.Siblings[i] = g.Siblings[i].Shift(delta)
	}
	out.Siblings[b] = buffer.Range{Start: rb.Start + delta, End: rb.End}
	for i := a; i < b && i < len(out.Separators); i++ {
		out.Separators[i] += delta
	}
	return out
}
