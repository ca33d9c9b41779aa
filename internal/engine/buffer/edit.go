package buffer

import (
	"fmt"
	"sort"
	"strings"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset Offset, text string) Edit {
	return Edit{
		Range:   Range{Start: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Offset) Edit {
	return Edit{
		Range:   Range{Start: start, End: end},
		NewText: "",
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in text length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Range.Len()
}

// ApplyEdits applies a set of non-overlapping edits to text.
// Ranges refer to the original text; edits may be given in any order.
func ApplyEdits(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	var b strings.Builder
	growth := 0
	for _, e := range sorted {
		growth += e.Delta()
	}
	if size := len(text) + growth; size > 0 {
		b.Grow(size)
	}

	prev := 0
	for _, e := range sorted {
		r := e.Range
		if !r.IsValid() {
			return text, fmt.Errorf("%w: %s", ErrRangeInvalid, r)
		}
		if r.End > len(text) {
			return text, fmt.Errorf("%w: %s in text of length %d", ErrOffsetOutOfRange, r, len(text))
		}
		if r.Start < prev {
			return text, fmt.Errorf("%w: %s", ErrEditsOverlap, r)
		}
		b.WriteString(text[prev:r.Start])
		b.WriteString(e.NewText)
		prev = r.End
	}
	b.WriteString(text[prev:])

	return b.String(), nil
}
