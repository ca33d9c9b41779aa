package profile

// DefaultName is the filetype used when no better profile is known.
const DefaultName = "default"

// Shared building blocks for the built-in profiles.
var (
	cBrackets       = []string{"()", "[]", "{}"}
	genericBrackets = []string{"()", "[]", "{}", "<>"}

	cComments     = []string{"//"}
	cBlockComment = []BlockComment{{Open: "/*", Close: "*/"}}

	doubleQuote = Quote{Open: `"`, Escape: `\`}
	singleQuote = Quote{Open: `'`, Escape: `\`}
	charQuote   = Quote{Open: `'`, Escape: `\`, Char: true}
	backtick    = Quote{Open: "`", Multiline: true}

	commonOperators = []string{
		"::", "->", "=>", "<=", ">=", "==", "!=", "&&", "||",
		"|=", "&=", "+=", "-=", "*=", "/=", "%=", "^=", "..",
	}
)

func rustProfile() Profile {
	return Profile{
		Name:            "rust",
		Extensions:      []string{".rs"},
		Brackets:        genericBrackets,
		Generics:        true,
		Turbofish:       true,
		Closures:        true,
		ClosureKeywords: []string{"move", "return"},
		BraceGroups:     true,
		Lifetimes:       true,
		RawStrings:      true,
		ReturnArrow:     "->",
		Quotes: []Quote{
			{Open: `"`, Escape: `\`, Multiline: true},
			charQuote,
		},
		LineComments:  cComments,
		BlockComments: []BlockComment{{Open: "/*", Close: "*/", Nested: true}},
		Operators:     append([]string{"..=", "..."}, commonOperators...),
	}
}

func goProfile() Profile {
	return Profile{
		Name:          "go",
		Extensions:    []string{".go"},
		Brackets:      cBrackets,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, charQuote, backtick},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     append([]string{"<-", ":=", "...", "<<", ">>"}, commonOperators...),
	}
}

func cProfile() Profile {
	return Profile{
		Name:          "c",
		Extensions:    []string{".c", ".h"},
		Brackets:      cBrackets,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, charQuote},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     append([]string{"<<", ">>"}, commonOperators...),
	}
}

func cppProfile() Profile {
	return Profile{
		Name:          "cpp",
		Extensions:    []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
		Brackets:      genericBrackets,
		Generics:      true,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, charQuote},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     commonOperators,
	}
}

func javaProfile() Profile {
	return Profile{
		Name:          "java",
		Extensions:    []string{".java"},
		Brackets:      genericBrackets,
		Generics:      true,
		BraceGroups:   true,
		Quotes:        []Quote{{Open: `"""`, Multiline: true, Escape: `\`}, doubleQuote, charQuote},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     commonOperators,
	}
}

func javascriptProfile() Profile {
	return Profile{
		Name:          "javascript",
		Extensions:    []string{".js", ".mjs", ".cjs", ".jsx"},
		Brackets:      cBrackets,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, singleQuote, {Open: "`", Escape: `\`, Multiline: true}},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     append([]string{"===", "!==", "??", "?."}, commonOperators...),
	}
}

func typescriptProfile() Profile {
	p := javascriptProfile()
	p.Name = "typescript"
	p.Extensions = []string{".ts", ".tsx", ".mts", ".cts"}
	p.Brackets = genericBrackets
	p.Generics = true
	return p
}

func pythonProfile() Profile {
	return Profile{
		Name:        "python",
		Extensions:  []string{".py", ".pyi"},
		Brackets:    cBrackets,
		BraceGroups: true,
		Quotes: []Quote{
			{Open: `"""`, Escape: `\`, Multiline: true},
			{Open: `'''`, Escape: `\`, Multiline: true},
			doubleQuote,
			singleQuote,
		},
		LineComments: []string{"#"},
		Operators:    append([]string{"**", "//", ":=", "<<", ">>"}, commonOperators...),
	}
}

func rubyProfile() Profile {
	return Profile{
		Name:            "ruby",
		Extensions:      []string{".rb", ".rake", ".gemspec"},
		Brackets:        cBrackets,
		Closures:        true,
		ClosureKeywords: []string{"do"},
		BraceGroups:     true,
		Quotes:          []Quote{{Open: `"`, Escape: `\`, Multiline: true}, {Open: `'`, Escape: `\`, Multiline: true}},
		LineComments:    []string{"#"},
		Operators:       append([]string{"<<", ">>", "**", "<=>", "=~"}, commonOperators...),
	}
}

func luaProfile() Profile {
	return Profile{
		Name:          "lua",
		Extensions:    []string{".lua"},
		Brackets:      cBrackets,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, singleQuote, {Open: "[[", Close: "]]", Multiline: true}},
		LineComments:  []string{"--"},
		BlockComments: []BlockComment{{Open: "--[[", Close: "]]"}},
		Operators:     []string{"==", "~=", "<=", ">=", "..", "...", "::"},
	}
}

func defaultProfile() Profile {
	return Profile{
		Name:          DefaultName,
		Brackets:      cBrackets,
		BraceGroups:   true,
		Quotes:        []Quote{doubleQuote, singleQuote},
		LineComments:  cComments,
		BlockComments: cBlockComment,
		Operators:     commonOperators,
	}
}

// Builtins returns fresh copies of every built-in profile.
func Builtins() []Profile {
	ps := []Profile{
		rustProfile(),
		goProfile(),
		cProfile(),
		cppProfile(),
		javaProfile(),
		javascriptProfile(),
		typescriptProfile(),
		pythonProfile(),
		rubyProfile(),
		luaProfile(),
		defaultProfile(),
	}
	for i := range ps {
		ps[i] = ps[i].Clone()
	}
	return ps
}

// Rust returns the built-in Rust profile.
func Rust() Profile {
	return rustProfile().Clone()
}

// Default returns the built-in fallback profile.
func Default() Profile {
	return defaultProfile().Clone()
}
