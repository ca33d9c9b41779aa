package sibling

import (
	"github.com/dshills/sideways/internal/engine/lexer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// Role is the resolved meaning of a delimiter candidate.
type Role uint8

const (
	// RoleOperator marks a candidate that is not structural: a comparison,
	// a shift, a bitwise or.
	RoleOperator Role = iota
	// RoleGroupOpen opens a sibling group.
	RoleGroupOpen
	// RoleGroupClose closes a sibling group.
	RoleGroupClose
	// RoleBlockOpen opens a block body. Blocks nest but are never groups.
	RoleBlockOpen
	// RoleBlockClose closes a block body.
	RoleBlockClose
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleOperator:
		return "operator"
	case RoleGroupOpen:
		return "group-open"
	case RoleGroupClose:
		return "group-close"
	case RoleBlockOpen:
		return "block-open"
	case RoleBlockClose:
		return "block-close"
	default:
		return "unknown"
	}
}

// IsStructural reports whether the role affects nesting depth.
func (r Role) IsStructural() bool {
	return r != RoleOperator
}

// IsOpen reports whether the role opens a group or block.
func (r Role) IsOpen() bool {
	return r == RoleGroupOpen || r == RoleBlockOpen
}

// IsClose reports whether the role closes a group or block.
func (r Role) IsClose() bool {
	return r == RoleGroupClose || r == RoleBlockClose
}

// Token is a delimiter candidate with its resolved role.
type Token struct {
	lexer.Span

	// Glyph is the delimiter character.
	Glyph byte

	// Role is the resolved role.
	Role Role

	// Index is the position of the span in the classified stream.
	Index int

	// Match is the index of the partner token, or -1.
	Match int
}

// Disambiguate resolves the role of every delimiter candidate in spans.
//
// Roles depend only on a bounded window around each candidate, never on a
// parse tree:
//
//   - ( and [ always open groups.
//   - < opens a generic list after `::` (turbofish), or when it directly
//     follows an identifier, directly precedes something type-like, and a
//     matching > is reachable before a statement boundary.
//   - | opens a closure parameter list where an expression may start and a
//     matching | follows before the next `;`.
//   - { opens a group when the profile allows brace groups and its interior
//     is comma separated without `;`. Otherwise it is a block.
//
// Candidates that resolve to operators do not affect depth. Structural
// delimiters that do not balance yield ErrUnbalancedDelimiters.
func Disambiguate(text string, spans []lexer.Span, p profile.Profile) ([]Token, error) {
	d := newDisambiguator(text, spans, p)
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.tokens, nil
}

type disambiguator struct {
	text      string
	spans     []lexer.Span
	p         profile.Profile
	tokens    []Token
	spanToken []int // span index -> token index, -1 for non-delimiters
}

func newDisambiguator(text string, spans []lexer.Span, p profile.Profile) *disambiguator {
	d := &disambiguator{
		text:      text,
		spans:     spans,
		p:         p,
		spanToken: make([]int, len(spans)),
	}
	for si, sp := range spans {
		d.spanToken[si] = -1
		if !sp.IsDelimiter() {
			continue
		}
		d.spanToken[si] = len(d.tokens)
		d.tokens = append(d.tokens, Token{
			Span:  sp,
			Glyph: text[sp.Start],
			Role:  RoleOperator,
			Index: si,
			Match: -1,
		})
	}
	return d
}

func (d *disambiguator) run() error {
	resolved := make([]bool, len(d.tokens))

	for ti := range d.tokens {
		if resolved[ti] {
			continue
		}
		resolved[ti] = true
		tok := &d.tokens[ti]

		switch {
		case tok.Glyph == '<' && d.p.Generics:
			if d.isTurbofish(tok.Index) {
				tok.Role = RoleGroupOpen
			}
			if ci := d.angleClose(tok.Index); ci >= 0 && !resolved[ci] {
				d.pair(ti, ci)
				resolved[ci] = true
			}
		case tok.Glyph == '>' && d.p.Generics:
			// Unclaimed closing angles are comparisons or shifts.
		case tok.Kind == lexer.KindPipe:
			if ci := d.pipeClose(tok.Index); ci >= 0 && !resolved[ci] {
				d.pair(ti, ci)
				resolved[ci] = true
			}
		case tok.Kind == lexer.KindOpen:
			tok.Role = RoleGroupOpen
		case tok.Kind == lexer.KindClose:
			tok.Role = RoleGroupClose
		}
	}

	if err := d.match(); err != nil {
		return err
	}
	d.classifyBraces()
	return nil
}

func (d *disambiguator) pair(open, close int) {
	d.tokens[open].Role = RoleGroupOpen
	d.tokens[open].Match = close
	d.tokens[close].Role = RoleGroupClose
	d.tokens[close].Match = open
}

// match pairs structural tokens by depth and checks their glyphs agree.
func (d *disambiguator) match() error {
	var stack []int
	for ti := range d.tokens {
		tok := &d.tokens[ti]
		switch {
		case tok.Role.IsOpen():
			stack = append(stack, ti)
		case tok.Role.IsClose():
			if len(stack) == 0 {
				return &PositionError{Offset: tok.Start, Err: ErrUnbalancedDelimiters}
			}
			oi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			open := &d.tokens[oi]
			if d.p.Partner(open.Glyph) != tok.Glyph || (open.Match >= 0 && open.Match != ti) {
				return &PositionError{Offset: tok.Start, Err: ErrUnbalancedDelimiters}
			}
			open.Match = ti
			tok.Match = oi
		}
	}
	if len(stack) > 0 {
		return &PositionError{Offset: d.tokens[stack[len(stack)-1]].Start, Err: ErrUnbalancedDelimiters}
	}
	return nil
}

// classifyBraces demotes brace pairs that are not comma separated to blocks.
func (d *disambiguator) classifyBraces() {
	for ti := range d.tokens {
		open := &d.tokens[ti]
		if open.Glyph != '{' || open.Role != RoleGroupOpen {
			continue
		}
		if d.p.BraceGroups && d.commaSeparated(open.Index, d.tokens[open.Match].Index) {
			continue
		}
		open.Role = RoleBlockOpen
		d.tokens[open.Match].Role = RoleBlockClose
	}
}

// commaSeparated reports whether the spans strictly between open and close
// contain a top-level comma and no top-level semicolon.
func (d *disambiguator) commaSeparated(open, close int) bool {
	depth := 0
	comma := false
	for si := open + 1; si < close; si++ {
		if ti := d.spanToken[si]; ti >= 0 && d.tokens[ti].Role.IsStructural() {
			if d.tokens[ti].Role.IsOpen() {
				depth++
			} else {
				depth--
			}
			continue
		}
		if depth != 0 || d.spans[si].Kind != lexer.KindOperator {
			continue
		}
		switch d.spans[si].Text(d.text) {
		case ",":
			comma = true
		case ";":
			return false
		}
	}
	return comma
}

func (d *disambiguator) glyph(si int) byte {
	return d.text[d.spans[si].Start]
}

func (d *disambiguator) isOperator(si int, ops ...string) bool {
	if si < 0 || si >= len(d.spans) || d.spans[si].Kind != lexer.KindOperator {
		return false
	}
	text := d.spans[si].Text(d.text)
	for _, op := range ops {
		if text == op {
			return true
		}
	}
	return false
}

func (d *disambiguator) isTurbofish(si int) bool {
	return d.p.Turbofish && d.isOperator(si-1, "::")
}

// angleOpens is the local predicate for a generic `<`: turbofish, or glued
// to an identifier on the left and to a type-like token on the right.
func (d *disambiguator) angleOpens(si int) bool {
	if d.isTurbofish(si) {
		return true
	}
	if si == 0 || si+1 >= len(d.spans) {
		return false
	}
	if d.spans[si-1].Kind != lexer.KindIdentifier {
		return false
	}
	next := si + 1
	switch d.spans[next].Kind {
	case lexer.KindIdentifier, lexer.KindLifetime:
		return true
	case lexer.KindOpen:
		c := d.glyph(next)
		return c == '(' || c == '[' || c == '<'
	case lexer.KindClose:
		return d.glyph(next) == '>'
	case lexer.KindOperator:
		return d.isOperator(next, "&", "&&", "*", "::")
	}
	return false
}

// angleClose returns the token index of the `>` closing the `<` at span si,
// or -1 when the `<` is a comparison.
func (d *disambiguator) angleClose(si int) int {
	if !d.angleOpens(si) {
		return -1
	}

	var stack []byte
	brackets := 0 // non-angle entries on the stack
	for j := si + 1; j < len(d.spans); j++ {
		switch d.spans[j].Kind {
		case lexer.KindOpen:
			c := d.glyph(j)
			if c == '<' {
				if d.angleOpens(j) {
					stack = append(stack, '<')
				}
				continue
			}
			if c == '{' && brackets == 0 {
				return -1
			}
			stack = append(stack, c)
			brackets++

		case lexer.KindClose:
			c := d.glyph(j)
			if c == '>' {
				if len(stack) == 0 {
					return d.spanToken[j]
				}
				if stack[len(stack)-1] == '<' {
					stack = stack[:len(stack)-1]
				}
				continue
			}
			for len(stack) > 0 && stack[len(stack)-1] == '<' {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 || d.p.Partner(stack[len(stack)-1]) != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			brackets--

		case lexer.KindOperator:
			if brackets == 0 && d.isOperator(j, ";", "&&", "||") {
				return -1
			}
		}
	}
	return -1
}

// prevSignificant returns the index of the nearest non-trivia span before si.
func (d *disambiguator) prevSignificant(si int) int {
	for j := si - 1; j >= 0; j-- {
		if !d.spans[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// pipeOpens reports whether a `|` at span si sits where an expression may
// start, which is where a closure can begin.
func (d *disambiguator) pipeOpens(si int) bool {
	prev := d.prevSignificant(si)
	if prev < 0 {
		return true
	}
	switch d.spans[prev].Kind {
	case lexer.KindOpen:
		return d.glyph(prev) != '<'
	case lexer.KindOperator:
		return d.isOperator(prev, ",", "=", "=>", ";")
	case lexer.KindIdentifier:
		return d.p.IsClosureKeyword(d.spans[prev].Text(d.text))
	}
	return false
}

// pipeClose returns the token index of the `|` closing the closure
// parameter list opened at span si, or -1 for a bitwise or.
func (d *disambiguator) pipeClose(si int) int {
	if !d.pipeOpens(si) {
		return -1
	}

	depth := 0
	for j := si + 1; j < len(d.spans); j++ {
		switch d.spans[j].Kind {
		case lexer.KindOpen:
			if d.glyph(j) != '<' {
				depth++
			}
		case lexer.KindClose:
			if d.glyph(j) != '>' {
				depth--
				if depth < 0 {
					return -1
				}
			}
		case lexer.KindPipe:
			if depth == 0 {
				return d.spanToken[j]
			}
		case lexer.KindOperator:
			if depth == 0 && d.isOperator(j, ";") {
				return -1
			}
		}
	}
	return -1
}
