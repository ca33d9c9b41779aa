// Package sibling finds, segments, and swaps sibling arguments.
//
// A sibling group is the comma separated interior of a bracket pair: call
// arguments, parameters, generic type arguments, closure parameters,
// struct literal fields. The package resolves which delimiters are
// structural, finds the innermost group around a cursor offset, and
// exchanges the sibling under the cursor with a neighbor while leaving all
// gap text in place.
//
// Basic usage:
//
//	res, err := sibling.Swap(src, offset, sibling.Right, profile.Rust())
//	switch {
//	case sibling.IsBenign(err):
//		// nothing to do
//	case err != nil:
//		return err
//	}
//	src, offset = res.Text, res.Cursor
//
// All offsets are byte offsets into the text.
package sibling
