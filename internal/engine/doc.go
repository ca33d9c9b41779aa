// Package engine provides the sibling swap engine for sideways.
//
// The engine package serves as the main facade, combining the profile
// registry with the sibling operations into a single API that picks the
// right profile for a filetype or path.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: byte ranges, batched edits, line/column conversion
//   - profile: per-filetype lexical profiles and their registry
//   - lexer: classification of text into spans
//   - sibling: delimiter roles, bracket matching, segmentation, swapping
//
// # Thread Safety
//
// An Engine holds only immutable configuration. All methods may be called
// from multiple goroutines. To change configuration, build a new Engine
// and replace the old one.
//
// # Basic Usage
//
//	e := engine.New(profile.NewBuiltinRegistry(), engine.WithWrap(true))
//
//	res, err := e.Swap(engine.Request{
//		Text:      "foo(a, b)",
//		Offset:    4,
//		Direction: engine.Right,
//		Path:      "main.rs",
//	})
//	if err != nil && !engine.IsBenign(err) {
//		return err
//	}
//	fmt.Println(res.Text, res.Cursor) // foo(b, a) 7
//
// # Cursor Positions
//
// Requests carry the cursor either as a byte offset or as a line/column
// Point. Columns count grapheme clusters, so a cursor after "é" on a line
// is column 1 regardless of how the character is encoded.
package engine
