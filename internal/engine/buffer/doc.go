// Package buffer provides the offset arithmetic shared by the sibling engine
// and its hosts.
//
// The buffer package provides:
//
//   - Range: half-open byte ranges over a string
//   - Edit and ApplyEdits: non-overlapping replacements computed against the
//     original text and applied in one pass
//   - Point: line/column positions with grapheme-cluster columns, and
//     conversion to and from byte offsets
//
// Basic usage:
//
//	text := "call(a, b)"
//	out, err := buffer.ApplyEdits(text, []buffer.Edit{
//	    buffer.NewEdit(buffer.NewRange(5, 6), "b"),
//	    buffer.NewEdit(buffer.NewRange(8, 9), "a"),
//	})
//	// out == "call(b, a)"
//
// Position Types:
//
//   - Offset: raw byte position in the text
//   - Point: line and column (0-indexed, column in grapheme clusters)
//
// All functions are pure and safe for concurrent use.
package buffer
