package sibling

import (
	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/lexer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// Analysis holds the classified and disambiguated form of a text.
// It is read-only once built and safe to share between goroutines.
type Analysis struct {
	Text    string
	Profile profile.Profile
	Spans   []lexer.Span
	Tokens  []Token

	spanToken []int
}

// Analyze classifies text and resolves every delimiter role.
func Analyze(text string, p profile.Profile) (*Analysis, error) {
	spans, err := lexer.Classify(text, p)
	if err != nil {
		return nil, err
	}
	d := newDisambiguator(text, spans, p)
	if err := d.run(); err != nil {
		return nil, err
	}
	return &Analysis{
		Text:      text,
		Profile:   p,
		Spans:     spans,
		Tokens:    d.tokens,
		spanToken: d.spanToken,
	}, nil
}

// TokenAt returns the token for the span at index si.
func (a *Analysis) TokenAt(si int) (Token, bool) {
	if si < 0 || si >= len(a.spanToken) || a.spanToken[si] < 0 {
		return Token{}, false
	}
	return a.Tokens[a.spanToken[si]], true
}

// SpansIn returns the spans lying entirely inside r.
func (a *Analysis) SpansIn(r buffer.Range) []lexer.Span {
	var out []lexer.Span
	for _, sp := range a.Spans {
		if sp.End <= r.Start {
			continue
		}
		if sp.Start >= r.End {
			break
		}
		if r.ContainsRange(sp.Range) {
			out = append(out, sp)
		}
	}
	return out
}

// inComment reports whether offset lies inside a comment span.
func (a *Analysis) inComment(offset int) bool {
	si := lexer.At(a.Spans, offset)
	if si < 0 {
		return false
	}
	sp := a.Spans[si]
	return sp.Kind == lexer.KindComment && sp.Contains(offset) && offset > sp.Start
}
