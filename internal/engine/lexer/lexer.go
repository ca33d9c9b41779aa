package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
)

// Classify splits text into spans according to the profile.
//
// Delimiter candidates inside literals and comments are never emitted as
// delimiters. The only failure is a multi-line literal or block comment that
// is still open at the end of the text, reported as a *PositionError
// wrapping ErrUnterminated.
func Classify(text string, p profile.Profile) ([]Span, error) {
	l := &lexer{
		text:   text,
		p:      p,
		quotes: p.SortedQuotes(),
		ops:    p.SortedOperators(),
		spans:  make([]Span, 0, len(text)/3+1),
	}
	for l.pos < len(l.text) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.spans, nil
}

type lexer struct {
	text   string
	p      profile.Profile
	quotes []profile.Quote
	ops    []string
	pos    int
	spans  []Span
}

// emit records a span from the current position to end and advances.
func (l *lexer) emit(kind Kind, end int) {
	l.spans = append(l.spans, Span{Range: buffer.NewRange(l.pos, end), Kind: kind})
	l.pos = end
}

func (l *lexer) unterminated() error {
	return &PositionError{Offset: l.pos, Err: ErrUnterminated}
}

func (l *lexer) next() error {
	c := l.text[l.pos]

	if isSpace(c) {
		end := l.pos + 1
		for end < len(l.text) && isSpace(l.text[end]) {
			end++
		}
		l.emit(KindWhitespace, end)
		return nil
	}

	if ok, err := l.blockComment(); ok || err != nil {
		return err
	}
	if l.lineComment() {
		return nil
	}
	if l.p.RawStrings {
		if ok, err := l.rawString(); ok || err != nil {
			return err
		}
	}
	if c == '\'' && l.p.Lifetimes && l.lifetime() {
		return nil
	}
	if ok, err := l.quoted(); ok || err != nil {
		return err
	}

	r, size := utf8.DecodeRuneInString(l.text[l.pos:])
	if isIdentRune(r) {
		end := l.pos + size
		for end < len(l.text) {
			r, size := utf8.DecodeRuneInString(l.text[end:])
			if !isIdentRune(r) {
				break
			}
			end += size
		}
		l.emit(KindIdentifier, end)
		return nil
	}

	for _, op := range l.ops {
		if strings.HasPrefix(l.text[l.pos:], op) {
			l.emit(KindOperator, l.pos+len(op))
			return nil
		}
	}

	switch {
	case l.p.IsOpen(c):
		l.emit(KindOpen, l.pos+1)
	case l.p.IsClose(c):
		l.emit(KindClose, l.pos+1)
	case c == '|' && l.p.Closures:
		l.emit(KindPipe, l.pos+1)
	default:
		l.emit(KindOperator, l.pos+size)
	}
	return nil
}

func (l *lexer) blockComment() (bool, error) {
	rest := l.text[l.pos:]
	for _, bc := range l.p.BlockComments {
		if !strings.HasPrefix(rest, bc.Open) {
			continue
		}
		depth := 1
		i := l.pos + len(bc.Open)
		for i < len(l.text) {
			switch {
			case bc.Nested && strings.HasPrefix(l.text[i:], bc.Open):
				depth++
				i += len(bc.Open)
			case strings.HasPrefix(l.text[i:], bc.Close):
				depth--
				i += len(bc.Close)
				if depth == 0 {
					l.emit(KindComment, i)
					return true, nil
				}
			default:
				i++
			}
		}
		return true, l.unterminated()
	}
	return false, nil
}

func (l *lexer) lineComment() bool {
	rest := l.text[l.pos:]
	for _, prefix := range l.p.LineComments {
		if !strings.HasPrefix(rest, prefix) {
			continue
		}
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		l.emit(KindComment, l.pos+end)
		return true
	}
	return false
}

// rawString reads r"..." and r#"..."# literals, with an optional b prefix.
func (l *lexer) rawString() (bool, error) {
	if l.pos > 0 {
		if r, _ := utf8.DecodeLastRuneInString(l.text[:l.pos]); isIdentRune(r) {
			return false, nil
		}
	}
	j := l.pos
	if j < len(l.text) && l.text[j] == 'b' {
		j++
	}
	if j >= len(l.text) || l.text[j] != 'r' {
		return false, nil
	}
	j++
	hashes := 0
	for j < len(l.text) && l.text[j] == '#' {
		hashes++
		j++
	}
	if j >= len(l.text) || l.text[j] != '"' {
		return false, nil
	}
	closer := `"` + strings.Repeat("#", hashes)
	end := strings.Index(l.text[j+1:], closer)
	if end < 0 {
		return true, l.unterminated()
	}
	l.emit(KindLiteral, j+1+end+len(closer))
	return true, nil
}

// lifetime reads 'ident when it is not a character literal like 'a'.
func (l *lexer) lifetime() bool {
	j := l.pos + 1
	r, size := utf8.DecodeRuneInString(l.text[j:])
	if !(unicode.IsLetter(r) || r == '_') {
		return false
	}
	j += size
	for j < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[j:])
		if !isIdentRune(r) {
			break
		}
		j += size
	}
	if j < len(l.text) && l.text[j] == '\'' {
		return false
	}
	l.emit(KindLifetime, j)
	return true
}

func (l *lexer) quoted() (bool, error) {
	rest := l.text[l.pos:]
	for _, q := range l.quotes {
		if !strings.HasPrefix(rest, q.Open) {
			continue
		}
		closer := q.Closer()
		i := l.pos + len(q.Open)
		for i < len(l.text) {
			if q.Escape != "" && strings.HasPrefix(l.text[i:], q.Escape) {
				i += len(q.Escape)
				if i < len(l.text) {
					_, size := utf8.DecodeRuneInString(l.text[i:])
					i += size
				}
				continue
			}
			if strings.HasPrefix(l.text[i:], closer) {
				l.emit(KindLiteral, i+len(closer))
				return true, nil
			}
			if l.text[i] == '\n' && !q.Multiline {
				if q.Char {
					l.emit(KindOperator, l.pos+len(q.Open))
				} else {
					l.emit(KindLiteral, i)
				}
				return true, nil
			}
			i++
		}

		switch {
		case q.Char:
			l.emit(KindOperator, l.pos+len(q.Open))
			return true, nil
		case q.Multiline:
			return true, l.unterminated()
		default:
			l.emit(KindLiteral, len(l.text))
			return true, nil
		}
	}
	return false, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
