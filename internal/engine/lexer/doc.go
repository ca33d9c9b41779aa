// Package lexer classifies source text into spans for the sibling engine.
//
// Classification is deliberately shallow: it knows about whitespace,
// identifiers, literals, comments, lifetimes, operators and delimiter
// candidates, and nothing about grammar. Whether a delimiter candidate
// actually opens a sibling group is decided later from local context.
package lexer
