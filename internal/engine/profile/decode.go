package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a profile file.
type Format string

// Supported profile formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Definition is a user-supplied profile as read from a config or profile
// file. Unset fields inherit from Base (or the default profile).
type Definition struct {
	Name            string         `toml:"name" yaml:"name"`
	Base            string         `toml:"base" yaml:"base"`
	Extensions      []string       `toml:"extensions" yaml:"extensions"`
	Brackets        []string       `toml:"brackets" yaml:"brackets"`
	Generics        *bool          `toml:"generics" yaml:"generics"`
	Turbofish       *bool          `toml:"turbofish" yaml:"turbofish"`
	Closures        *bool          `toml:"closures" yaml:"closures"`
	ClosureKeywords []string       `toml:"closure_keywords" yaml:"closure_keywords"`
	BraceGroups     *bool          `toml:"brace_groups" yaml:"brace_groups"`
	Lifetimes       *bool          `toml:"lifetimes" yaml:"lifetimes"`
	RawStrings      *bool          `toml:"raw_strings" yaml:"raw_strings"`
	ReturnArrow     *string        `toml:"return_arrow" yaml:"return_arrow"`
	Quotes          []Quote        `toml:"quotes" yaml:"quotes"`
	LineComments    []string       `toml:"line_comments" yaml:"line_comments"`
	BlockComments   []BlockComment `toml:"block_comments" yaml:"block_comments"`
	Operators       []string       `toml:"operators" yaml:"operators"`
}

// Resolve builds the profile described by d on top of its base profile,
// looked up in reg. With no base, the default profile is used; a definition
// named after an existing profile extends that profile.
func (d Definition) Resolve(reg *Registry) (Profile, error) {
	name := strings.ToLower(strings.TrimSpace(d.Name))
	if name == "" {
		return Profile{}, ErrNoName
	}

	base := strings.ToLower(strings.TrimSpace(d.Base))
	var p Profile
	switch {
	case base != "":
		b, ok := reg.Lookup(base)
		if !ok {
			return Profile{}, fmt.Errorf("%w: %s", ErrUnknownBase, d.Base)
		}
		p = b
		p.Extensions = nil
	case reg.Has(name):
		p, _ = reg.Lookup(name)
	default:
		p = Default()
	}
	p.Name = name

	if d.Extensions != nil {
		p.Extensions = d.Extensions
	}
	if d.Brackets != nil {
		p.Brackets = d.Brackets
	}
	if d.ClosureKeywords != nil {
		p.ClosureKeywords = d.ClosureKeywords
	}
	if d.Quotes != nil {
		p.Quotes = d.Quotes
	}
	if d.LineComments != nil {
		p.LineComments = d.LineComments
	}
	if d.BlockComments != nil {
		p.BlockComments = d.BlockComments
	}
	if d.Operators != nil {
		p.Operators = d.Operators
	}
	setBool(&p.Generics, d.Generics)
	setBool(&p.Turbofish, d.Turbofish)
	setBool(&p.Closures, d.Closures)
	setBool(&p.BraceGroups, d.BraceGroups)
	setBool(&p.Lifetimes, d.Lifetimes)
	setBool(&p.RawStrings, d.RawStrings)
	if d.ReturnArrow != nil {
		p.ReturnArrow = *d.ReturnArrow
	}

	p = p.Clone()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// profileFile is the top-level layout of a profile file.
type profileFile struct {
	Profiles []Definition `toml:"profiles" yaml:"profiles"`
}

// Decode parses profile definitions from data.
func Decode(data []byte, format Format) ([]Definition, error) {
	var f profileFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing toml profiles: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if len(bytes.TrimSpace(data)) == 0 {
				return nil, nil
			}
			return nil, fmt.Errorf("parsing yaml profiles: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return f.Profiles, nil
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile reads profile definitions from a TOML or YAML file.
func LoadFile(path string) ([]Definition, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file %s: %w", path, err)
	}
	defs, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}
