package sibling

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sideways/internal/engine/lexer"
	"github.com/dshills/sideways/internal/engine/profile"
)

func builtin(t *testing.T, name string) profile.Profile {
	t.Helper()
	p, ok := profile.NewBuiltinRegistry().Lookup(name)
	if !ok {
		t.Fatalf("no builtin profile %q", name)
	}
	return p
}

// roles renders the tokens of text as "glyph:role" pairs.
func roles(t *testing.T, text string, p profile.Profile) string {
	t.Helper()
	spans, err := lexer.Classify(text, p)
	if err != nil {
		t.Fatalf("Classify(%q) error = %v", text, err)
	}
	tokens, err := Disambiguate(text, spans, p)
	if err != nil {
		t.Fatalf("Disambiguate(%q) error = %v", text, err)
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = string(tok.Glyph) + ":" + tok.Role.String()
	}
	return strings.Join(out, " ")
}

func TestDisambiguateRust(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "comparisons",
			text: "foo(a < b, b > c)",
			want: "(:group-open <:operator >:operator ):group-close",
		},
		{
			name: "nested generics",
			text: "HashSet<String, Vec<String>>::new()",
			want: "<:group-open <:group-open >:group-close >:group-close (:group-open ):group-close",
		},
		{
			name: "turbofish",
			text: "x.collect::<Vec<u8>>()",
			want: "<:group-open <:group-open >:group-close >:group-close (:group-open ):group-close",
		},
		{
			name: "glued comparison",
			text: "a<b && c>d",
			want: "<:operator >:operator",
		},
		{
			name: "closure then bitwise or",
			text: "foo(|x| x | y)",
			want: "(:group-open |:group-open |:group-close |:operator ):group-close",
		},
		{
			name: "closure after assignment",
			text: "let f = |a, b| a | b;",
			want: "|:group-open |:group-close |:operator",
		},
		{
			name: "move closure",
			text: "move |a| a",
			want: "|:group-open |:group-close",
		},
		{
			name: "bitwise or only",
			text: "a | b | c",
			want: "|:operator |:operator",
		},
		{
			name: "if block",
			text: "if a < b { c }",
			want: "<:operator {:block-open }:block-close",
		},
		{
			name: "struct literal",
			text: "S { a: 1, b: 2 }",
			want: "{:group-open }:group-close",
		},
		{
			name: "block with tuple",
			text: "{ let a = (1, 2); }",
			want: "{:block-open (:group-open ):group-close }:block-close",
		},
		{
			name: "lifetimes",
			text: "fn f<'a>(x: &'a str) -> Ref<'a> {}",
			want: "<:group-open >:group-close (:group-open ):group-close <:group-open >:group-close {:block-open }:block-close",
		},
	}

	p := profile.Rust()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roles(t, tt.text, p); got != tt.want {
				t.Errorf("roles(%q)\n got: %s\nwant: %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDisambiguateOtherProfiles(t *testing.T) {
	tests := []struct {
		filetype string
		text     string
		want     string
	}{
		{"go", "foo(a<b, c>d)", "(:group-open ):group-close"},
		{"go", "func() { return }", "(:group-open ):group-close {:block-open }:block-close"},
		{"cpp", "std::map<int, std::string> m;", "<:group-open >:group-close"},
		{"cpp", "for (i = 0; i<n; i++) {}", "(:group-open <:operator ):group-close {:block-open }:block-close"},
		{"typescript", "let m: Map<string, number[]>", "<:group-open [:group-open ]:group-close >:group-close"},
		{"javascript", "f(a | b)", "(:group-open ):group-close"},
		{"ruby", "foo { |a, b| a }", "{:block-open |:group-open |:group-close }:block-close"},
		{"python", "{'a': 1, 'b': 2}", "{:group-open }:group-close"},
	}

	for _, tt := range tests {
		t.Run(tt.filetype+"/"+tt.text, func(t *testing.T) {
			if got := roles(t, tt.text, builtin(t, tt.filetype)); got != tt.want {
				t.Errorf("roles(%q)\n got: %s\nwant: %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDisambiguateUnbalanced(t *testing.T) {
	tests := []struct {
		text   string
		offset int
	}{
		{"foo(a, b", 3},
		{"foo(a])", 5},
		{"x)", 1},
		{"f(a, {b)", 7},
		{"x::<Vec", 3},
	}

	p := profile.Rust()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			spans, err := lexer.Classify(tt.text, p)
			if err != nil {
				t.Fatalf("Classify error = %v", err)
			}
			_, err = Disambiguate(tt.text, spans, p)
			if !errors.Is(err, ErrUnbalancedDelimiters) {
				t.Fatalf("Disambiguate(%q) error = %v, want ErrUnbalancedDelimiters", tt.text, err)
			}
			var pe *PositionError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a PositionError", err)
			}
			if pe.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", pe.Offset, tt.offset)
			}
		})
	}
}

func TestPairsAndEnclosing(t *testing.T) {
	text := "a(b, c[d], {e})"
	a, err := Analyze(text, profile.Default())
	if err != nil {
		t.Fatal(err)
	}

	pairs := Pairs(a.Tokens)
	if len(pairs) != 3 {
		t.Fatalf("len(Pairs) = %d, want 3", len(pairs))
	}
	for _, pr := range pairs {
		if pr.Open.Match < 0 || a.Tokens[pr.Open.Match].Start != pr.Close.Start {
			t.Errorf("pair %s does not point at its close", pr.Outer())
		}
	}

	tests := []struct {
		offset int
		open   int
		ok     bool
	}{
		{0, 0, false},
		{1, 0, false},
		{2, 1, true},
		{7, 6, true},
		{8, 6, true},
		{9, 1, true},
		{12, 1, true}, // inside a block brace
		{15, 0, false},
	}
	for _, tt := range tests {
		pr, ok := Enclosing(a.Tokens, tt.offset)
		if ok != tt.ok {
			t.Errorf("Enclosing(%d) ok = %v, want %v", tt.offset, ok, tt.ok)
			continue
		}
		if ok && pr.Open.Start != tt.open {
			t.Errorf("Enclosing(%d) open = %d, want %d", tt.offset, pr.Open.Start, tt.open)
		}
	}
}
