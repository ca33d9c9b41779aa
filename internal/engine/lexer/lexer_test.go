package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sideways/internal/engine/profile"
)

// kinds renders spans as "kind:text" pairs, skipping whitespace.
func kinds(t *testing.T, text string, p profile.Profile) []string {
	t.Helper()
	spans, err := Classify(text, p)
	if err != nil {
		t.Fatalf("Classify(%q) error = %v", text, err)
	}
	var out []string
	for _, s := range spans {
		if s.Kind == KindWhitespace {
			continue
		}
		out = append(out, s.Kind.String()+":"+s.Text(text))
	}
	return out
}

func TestClassifyPartitionsText(t *testing.T) {
	inputs := []string{
		"",
		"foo(a, b)",
		"fn f<'a>(x: &'a str) -> Vec<u8> { /* c */ x.into() } // end",
		"let s = \"a, \\\"b\\\"\"; let c = ',';",
		"  \n\t",
		"r#\"raw \" string\"# ü + 名前",
	}
	p := profile.Rust()

	for _, in := range inputs {
		spans, err := Classify(in, p)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", in, err)
		}
		pos := 0
		var b strings.Builder
		for _, s := range spans {
			if s.Start != pos {
				t.Fatalf("Classify(%q): span %s starts at %d, want %d", in, s.Range, s.Start, pos)
			}
			if s.IsEmpty() {
				t.Fatalf("Classify(%q): empty span at %d", in, s.Start)
			}
			b.WriteString(s.Text(in))
			pos = s.End
		}
		if b.String() != in {
			t.Errorf("Classify(%q) does not reconstruct input: %q", in, b.String())
		}
	}
}

func TestClassifyRust(t *testing.T) {
	p := profile.Rust()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lifetimes are atomic",
			text: "S<'a, 'static>",
			want: []string{"identifier:S", "open:<", "lifetime:'a", "operator:,", "lifetime:'static", "close:>"},
		},
		{
			name: "char literal is not a lifetime",
			text: "f('a', '\\'')",
			want: []string{"identifier:f", "open:(", "literal:'a'", "operator:,", "literal:'\\''", "close:)"},
		},
		{
			name: "arrow does not yield a close",
			text: "-> Result<T>",
			want: []string{"operator:->", "identifier:Result", "open:<", "identifier:T", "close:>"},
		},
		{
			name: "turbofish",
			text: "collect::<Vec<_>>()",
			want: []string{"identifier:collect", "operator:::", "open:<", "identifier:Vec", "open:<", "identifier:_", "close:>", "close:>", "open:(", "close:)"},
		},
		{
			name: "closure pipes and logical or",
			text: "|x| x || y | z",
			want: []string{"pipe:|", "identifier:x", "pipe:|", "identifier:x", "operator:||", "identifier:y", "pipe:|", "identifier:z"},
		},
		{
			name: "delimiters inside strings and comments",
			text: "f(\"(,)\" /* ) */, // (\n)",
			want: []string{"identifier:f", "open:(", "literal:\"(,)\"", "comment:/* ) */", "operator:,", "comment:// (", "close:)"},
		},
		{
			name: "raw strings",
			text: "r#\"a\"b\"# br\"x\"",
			want: []string{"literal:r#\"a\"b\"#", "literal:br\"x\""},
		},
		{
			name: "nested block comments",
			text: "/* a /* b */ c */x",
			want: []string{"comment:/* a /* b */ c */", "identifier:x"},
		},
		{
			name: "unclosed char quote degrades to operator",
			text: "a ' b\nc",
			want: []string{"identifier:a", "operator:'", "identifier:b", "identifier:c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(t, tt.text, p)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Classify(%q)\n got: %v\nwant: %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyOtherProfiles(t *testing.T) {
	reg := profile.NewBuiltinRegistry()

	tests := []struct {
		ft   string
		text string
		want []string
	}{
		{"python", `f("""a, (b""", '#') # c`, []string{"identifier:f", "open:(", `literal:"""a, (b"""`, "operator:,", "literal:'#'", "close:)", "comment:# c"}},
		{"go", "f(a<b, `x)`)", []string{"identifier:f", "open:(", "identifier:a", "operator:<", "identifier:b", "operator:,", "literal:`x)`", "close:)"}},
		{"lua", "--[[ ( ]] t{[[x]]}", []string{"comment:--[[ ( ]]", "identifier:t", "open:{", "literal:[[x]]", "close:}"}},
		{"javascript", "a | b", []string{"identifier:a", "operator:|", "identifier:b"}},
	}

	for _, tt := range tests {
		t.Run(tt.ft, func(t *testing.T) {
			p, ok := reg.Lookup(tt.ft)
			if !ok {
				t.Fatalf("no profile %s", tt.ft)
			}
			got := kinds(t, tt.text, p)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Classify(%q)\n got: %v\nwant: %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySingleLineStringStopsAtNewline(t *testing.T) {
	text := "f(\"abc\n, d)"
	got := kinds(t, text, profile.Default())
	want := []string{"identifier:f", "open:(", "literal:\"abc", "operator:,", "identifier:d", "close:)"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyUnterminated(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
	}{
		{"block comment", "f(a) /* open", 5},
		{"multiline string", "f(\"abc", 2},
		{"raw string", "x = r#\"abc\"", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.text, profile.Rust())
			if !errors.Is(err, ErrUnterminated) {
				t.Fatalf("error = %v, want ErrUnterminated", err)
			}
			var perr *PositionError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a *PositionError", err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", perr.Offset, tt.offset)
			}
		})
	}
}

func TestAt(t *testing.T) {
	text := "ab (c)"
	spans, err := Classify(text, profile.Default())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		offset int
		want   Kind
	}{
		{0, KindIdentifier},
		{2, KindWhitespace},
		{3, KindOpen},
		{5, KindClose},
		{6, KindClose},
	}
	for _, tt := range tests {
		i := At(spans, tt.offset)
		if i < 0 {
			t.Fatalf("At(%d) = -1", tt.offset)
		}
		if spans[i].Kind != tt.want {
			t.Errorf("At(%d) kind = %s, want %s", tt.offset, spans[i].Kind, tt.want)
		}
	}
	if At(spans, 99) != -1 {
		t.Error("At(99) should be -1")
	}
}
