package sibling

import (
	"strings"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/lexer"
)

// Group is the segmentation of a pair's interior into siblings.
// Text between consecutive siblings, separators included, is gap text and
// never moves.
type Group struct {
	Pair Pair

	// Siblings are the trimmed sibling ranges, left to right.
	Siblings []buffer.Range

	// Separators holds the offset of each top-level comma. A trailing comma
	// after the last sibling is recorded too.
	Separators []int
}

// Len returns the number of siblings.
func (g Group) Len() int {
	return len(g.Siblings)
}

// Text returns the text of sibling i.
func (g Group) Text(src string, i int) string {
	return g.Siblings[i].Slice(src)
}

// Texts returns the text of every sibling.
func (g Group) Texts(src string) []string {
	out := make([]string, len(g.Siblings))
	for i := range g.Siblings {
		out[i] = g.Text(src, i)
	}
	return out
}

// Segment splits the interior of pair at top-level commas.
//
// Leading and trailing whitespace is trimmed from each sibling, as is a
// line comment that trails the previous separator on the same line. Line
// comments at the end of a segment stay in the gap. An
// empty segment after a trailing comma is dropped. Empty segments between
// two commas are kept.
func (a *Analysis) Segment(pair Pair) Group {
	g := Group{Pair: pair}

	first := pair.Open.Index + 1
	last := pair.Close.Index
	start := first
	depth := 0

	for si := first; si < last; si++ {
		if tok, ok := a.TokenAt(si); ok && tok.Role.IsStructural() {
			if tok.Role.IsOpen() {
				depth++
			} else {
				depth--
			}
			continue
		}
		sp := a.Spans[si]
		if depth != 0 || sp.Kind != lexer.KindOperator || sp.Text(a.Text) != "," {
			continue
		}
		g.Siblings = append(g.Siblings, a.trim(start, si))
		g.Separators = append(g.Separators, sp.Start)
		start = si + 1
	}

	tail := a.trim(start, last)
	if !tail.IsEmpty() {
		g.Siblings = append(g.Siblings, tail)
	}
	return g
}

// trim returns the range covered by spans [lo, hi) minus surrounding
// trivia. An empty result sits where the next significant span starts.
func (a *Analysis) trim(lo, hi int) buffer.Range {
	newline := false
	for lo < hi {
		sp := a.Spans[lo]
		if sp.Kind == lexer.KindWhitespace {
			newline = newline || strings.Contains(sp.Text(a.Text), "\n")
			lo++
			continue
		}
		if sp.Kind == lexer.KindComment && !newline && a.isLineComment(sp) {
			lo++
			continue
		}
		break
	}
	for hi > lo {
		sp := a.Spans[hi-1]
		if sp.Kind == lexer.KindWhitespace || (sp.Kind == lexer.KindComment && a.isLineComment(sp)) {
			hi--
			continue
		}
		break
	}
	if lo == hi {
		at := len(a.Text)
		if lo < len(a.Spans) {
			at = a.Spans[lo].Start
		}
		return buffer.Range{Start: at, End: at}
	}
	return buffer.Range{Start: a.Spans[lo].Start, End: a.Spans[hi-1].End}
}

func (a *Analysis) isLineComment(sp lexer.Span) bool {
	text := sp.Text(a.Text)
	for _, prefix := range a.Profile.LineComments {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
