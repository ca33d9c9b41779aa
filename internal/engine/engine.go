package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
	"github.com/dshills/sideways/internal/engine/sibling"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a byte position in the text.
	Offset = buffer.Offset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the text.
	Range = buffer.Range

	// Direction selects the neighbor to swap with.
	Direction = sibling.Direction

	// Result is the outcome of a swap.
	Result = sibling.Result

	// Group is a segmented sibling group.
	Group = sibling.Group

	// Location is a cursor position relative to its sibling.
	Location = sibling.Location

	// Profile is a filetype's lexical profile.
	Profile = profile.Profile
)

// Re-export constants.
const (
	Left  = sibling.Left
	Right = sibling.Right
)

// ParseDirection parses "left" or "right".
func ParseDirection(s string) (Direction, error) {
	return sibling.ParseDirection(s)
}

// Request describes one operation on a text.
type Request struct {
	// Text is the full source text.
	Text string

	// Offset is the cursor as a byte offset. Ignored when Point is set.
	Offset Offset

	// Point is the cursor as a line/column position.
	Point *Point

	// Direction is the swap direction.
	Direction Direction

	// Filetype names the profile. When empty the profile is chosen from
	// Path, falling back to the default profile.
	Filetype string

	// Path is the file the text came from, used for filetype detection.
	Path string
}

// Siblings describes the sibling group around a cursor.
type Siblings struct {
	Filetype string
	Location Location
	Group    Group
}

// Engine swaps siblings in texts using a registry of profiles.
//
// An Engine holds only immutable configuration and is safe for concurrent
// use. Reconfigure by building a new Engine.
type Engine struct {
	reg     *profile.Registry
	wrap    bool
	enabled map[string]bool
}

// New creates an Engine backed by reg. A nil registry uses the built-in
// profiles.
func New(reg *profile.Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = profile.NewBuiltinRegistry()
	}
	e := &Engine{reg: reg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Wrap reports whether swaps wrap around at group boundaries.
func (e *Engine) Wrap() bool {
	return e.wrap
}

// Registry returns the engine's profile registry.
func (e *Engine) Registry() *profile.Registry {
	return e.reg
}

// Filetypes returns the enabled filetypes in sorted order.
func (e *Engine) Filetypes() []string {
	all := e.reg.Filetypes()
	if e.enabled == nil {
		return all
	}
	out := all[:0:0]
	for _, ft := range all {
		if e.enabled[ft] {
			out = append(out, ft)
		}
	}
	return out
}

// Profile resolves the profile for a filetype or path.
func (e *Engine) Profile(filetype, path string) (Profile, error) {
	ft := strings.ToLower(strings.TrimSpace(filetype))
	if ft == "" && path != "" {
		ft, _ = e.reg.FiletypeForPath(path)
	}
	if ft == "" {
		ft = profile.DefaultName
	}

	p, ok := e.reg.Lookup(ft)
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownFiletype, ft)
	}
	if e.enabled != nil && !e.enabled[p.Name] {
		return Profile{}, fmt.Errorf("%w: %q", ErrFiletypeDisabled, p.Name)
	}
	return p, nil
}

// Swap exchanges the sibling under the cursor with its neighbor.
// On ErrNoAdjacentSibling the result carries the unchanged text and cursor.
func (e *Engine) Swap(req Request) (Result, error) {
	p, offset, err := e.prepare(req)
	if err != nil {
		return Result{}, err
	}
	return sibling.Swap(req.Text, offset, req.Direction, p, sibling.WithWrap(e.wrap))
}

// Siblings returns the sibling group around the cursor.
func (e *Engine) Siblings(req Request) (Siblings, error) {
	p, offset, err := e.prepare(req)
	if err != nil {
		return Siblings{}, err
	}
	loc, g, err := sibling.Resolve(req.Text, offset, p)
	if err != nil {
		return Siblings{}, err
	}
	return Siblings{Filetype: p.Name, Location: loc, Group: g}, nil
}

// TextObject returns the inner or around range of the sibling under the
// cursor.
func (e *Engine) TextObject(req Request, around bool) (Range, error) {
	p, offset, err := e.prepare(req)
	if err != nil {
		return Range{}, err
	}
	return sibling.TextObject(req.Text, offset, p, around)
}

func (e *Engine) prepare(req Request) (Profile, Offset, error) {
	p, err := e.Profile(req.Filetype, req.Path)
	if err != nil {
		return Profile{}, 0, err
	}
	offset := req.Offset
	if req.Point != nil {
		offset, err = buffer.PointToOffset(req.Text, *req.Point)
		if err != nil {
			return Profile{}, 0, err
		}
	}
	if offset < 0 || offset > len(req.Text) {
		return Profile{}, 0, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}
	return p, offset, nil
}
