package profile

import (
	"fmt"
	"sort"
)

// Quote describes one kind of string or character literal.
type Quote struct {
	// Open is the opening quote sequence, e.g. `"` or `"""`.
	Open string `toml:"open" yaml:"open"`

	// Close is the closing quote sequence. Empty means same as Open.
	Close string `toml:"close" yaml:"close"`

	// Escape is the escape prefix inside the literal. Empty disables escapes.
	Escape string `toml:"escape" yaml:"escape"`

	// Multiline allows the literal to span lines. A single-line literal that
	// reaches a newline ends there.
	Multiline bool `toml:"multiline" yaml:"multiline"`

	// Char marks a character literal. An unclosed char quote is read as an
	// operator instead of failing.
	Char bool `toml:"char" yaml:"char"`
}

// Closer returns the closing sequence of the quote.
func (q Quote) Closer() string {
	if q.Close == "" {
		return q.Open
	}
	return q.Close
}

// BlockComment describes a block comment syntax.
type BlockComment struct {
	Open   string `toml:"open" yaml:"open"`
	Close  string `toml:"close" yaml:"close"`
	Nested bool   `toml:"nested" yaml:"nested"`
}

// Profile describes the delimiter rules of one language.
//
// A Profile is a value. Treat it as immutable once built; use Clone before
// modifying a profile obtained from a Registry.
type Profile struct {
	// Name is the filetype the profile is registered under.
	Name string

	// Extensions are file extensions (with leading dot) mapped to this profile.
	Extensions []string

	// Brackets lists delimiter pairs as two-character strings, e.g. "()".
	Brackets []string

	// Generics lets `<` and `>` form generic argument lists when the
	// surrounding text looks like a type.
	Generics bool

	// Turbofish makes `::<` always open a generic argument list.
	Turbofish bool

	// Closures enables `|params|` closure parameter lists.
	Closures bool

	// ClosureKeywords are identifiers that may directly precede a closure's
	// opening pipe (e.g. "move", "do").
	ClosureKeywords []string

	// BraceGroups lets `{}` form sibling groups when the interior is comma
	// separated. Otherwise braces are always blocks.
	BraceGroups bool

	// Lifetimes reads `'ident` as one atomic token.
	Lifetimes bool

	// RawStrings enables r"..." and r#"..."# literals.
	RawStrings bool

	// ReturnArrow is the operator that introduces a function's return type,
	// e.g. "->". The return type then acts as a one-argument text object.
	// The arrow only matches when it is also listed in Operators.
	ReturnArrow string

	Quotes        []Quote
	LineComments  []string
	BlockComments []BlockComment

	// Operators are multi-character operators lexed as a single token.
	Operators []string
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.Extensions = append([]string(nil), p.Extensions...)
	c.Brackets = append([]string(nil), p.Brackets...)
	c.ClosureKeywords = append([]string(nil), p.ClosureKeywords...)
	c.Quotes = append([]Quote(nil), p.Quotes...)
	c.LineComments = append([]string(nil), p.LineComments...)
	c.BlockComments = append([]BlockComment(nil), p.BlockComments...)
	c.Operators = append([]string(nil), p.Operators...)
	return c
}

// Validate checks that the profile is internally consistent.
func (p Profile) Validate() error {
	if p.Name == "" {
		return ErrNoName
	}
	seen := make(map[byte]bool)
	for _, pair := range p.Brackets {
		if len(pair) != 2 {
			return fmt.Errorf("%w: %q in profile %s", ErrInvalidBracket, pair, p.Name)
		}
		if seen[pair[0]] || seen[pair[1]] || pair[0] == pair[1] {
			return fmt.Errorf("%w: %q in profile %s", ErrInvalidBracket, pair, p.Name)
		}
		seen[pair[0]], seen[pair[1]] = true, true
	}
	if p.Generics && !p.HasBracket('<') {
		return fmt.Errorf("%w: generics need a \"<>\" bracket in profile %s", ErrInvalidBracket, p.Name)
	}
	for _, q := range p.Quotes {
		if q.Open == "" {
			return fmt.Errorf("%w: empty quote in profile %s", ErrInvalidQuote, p.Name)
		}
	}
	for _, c := range p.BlockComments {
		if c.Open == "" || c.Close == "" {
			return fmt.Errorf("%w: empty block comment in profile %s", ErrInvalidComment, p.Name)
		}
	}
	for _, c := range p.LineComments {
		if c == "" {
			return fmt.Errorf("%w: empty line comment in profile %s", ErrInvalidComment, p.Name)
		}
	}
	return nil
}

// HasBracket reports whether c opens or closes one of the profile's pairs.
func (p Profile) HasBracket(c byte) bool {
	for _, pair := range p.Brackets {
		if len(pair) == 2 && (pair[0] == c || pair[1] == c) {
			return true
		}
	}
	return false
}

// IsOpen reports whether c is an opening delimiter.
func (p Profile) IsOpen(c byte) bool {
	for _, pair := range p.Brackets {
		if len(pair) == 2 && pair[0] == c {
			return true
		}
	}
	return false
}

// IsClose reports whether c is a closing delimiter.
func (p Profile) IsClose(c byte) bool {
	for _, pair := range p.Brackets {
		if len(pair) == 2 && pair[1] == c {
			return true
		}
	}
	return false
}

// Partner returns the matching delimiter for c, or 0.
// The closure pipe is its own partner.
func (p Profile) Partner(c byte) byte {
	if c == '|' && p.Closures {
		return '|'
	}
	for _, pair := range p.Brackets {
		if len(pair) != 2 {
			continue
		}
		switch c {
		case pair[0]:
			return pair[1]
		case pair[1]:
			return pair[0]
		}
	}
	return 0
}

// IsClosureKeyword reports whether word may directly precede a closure.
func (p Profile) IsClosureKeyword(word string) bool {
	for _, kw := range p.ClosureKeywords {
		if kw == word {
			return true
		}
	}
	return false
}

// SortedQuotes returns the quotes ordered longest opening sequence first,
// so that `"""` is tried before `"`.
func (p Profile) SortedQuotes() []Quote {
	qs := append([]Quote(nil), p.Quotes...)
	sort.SliceStable(qs, func(i, j int) bool {
		return len(qs[i].Open) > len(qs[j].Open)
	})
	return qs
}

// SortedOperators returns the operators ordered longest first.
func (p Profile) SortedOperators() []string {
	ops := append([]string(nil), p.Operators...)
	sort.SliceStable(ops, func(i, j int) bool {
		return len(ops[i]) > len(ops[j])
	})
	return ops
}
