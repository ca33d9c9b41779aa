package sibling

import (
	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/lexer"
)

// ReturnType returns the return type containing offset, if any.
//
// A return type starts after the profile's return arrow and runs to the
// body `{`, a `where` clause, or a `;`, `,` or `=` at the same depth. A
// closing bracket that was opened before the arrow also ends it.
func (a *Analysis) ReturnType(offset int) (buffer.Range, bool) {
	arrow := a.Profile.ReturnArrow
	if arrow == "" {
		return buffer.Range{}, false
	}
	for si, sp := range a.Spans {
		if sp.Start > offset {
			break
		}
		if sp.Kind != lexer.KindOperator || sp.Text(a.Text) != arrow {
			continue
		}
		r := a.returnTypeFrom(si + 1)
		if !r.IsEmpty() && r.Start <= offset && offset < r.End {
			return r, true
		}
	}
	return buffer.Range{}, false
}

// returnTypeFrom returns the trimmed return type starting at span lo.
func (a *Analysis) returnTypeFrom(lo int) buffer.Range {
	depth := 0
	hi := lo
scan:
	for ; hi < len(a.Spans); hi++ {
		if tok, ok := a.TokenAt(hi); ok && tok.Role.IsStructural() {
			switch {
			case tok.Role.IsOpen() && depth == 0 && tok.Glyph == '{':
				break scan
			case tok.Role.IsOpen():
				depth++
			case depth == 0:
				break scan
			default:
				depth--
			}
			continue
		}
		if depth != 0 {
			continue
		}
		sp := a.Spans[hi]
		switch text := sp.Text(a.Text); {
		case sp.Kind == lexer.KindOperator && (text == ";" || text == "," || text == "="):
			break scan
		case sp.Kind == lexer.KindIdentifier && text == "where":
			break scan
		}
	}
	return a.trim(lo, hi)
}
