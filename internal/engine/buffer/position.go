package buffer

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in grapheme clusters from the start of the line,
// which is what an editor shows as one cursor cell.
type Point struct {
	Line   int // 0-indexed line number
	Column int // 0-indexed column (grapheme clusters within the line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// LineCount returns the number of lines in text.
// An empty text has one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// OffsetToPoint converts a byte offset to a line/column position.
func OffsetToPoint(text string, offset Offset) (Point, error) {
	if offset < 0 || offset > len(text) {
		return Point{}, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}

	prefix := text[:offset]
	line := strings.Count(prefix, "\n")
	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	return Point{
		Line:   line,
		Column: uniseg.GraphemeClusterCount(prefix[lineStart:]),
	}, nil
}

// PointToOffset converts a line/column position to a byte offset.
// Columns past the end of the line clamp to the line end.
func PointToOffset(text string, p Point) (Offset, error) {
	if p.Line < 0 || p.Column < 0 {
		return 0, fmt.Errorf("%w: %s", ErrOffsetOutOfRange, p)
	}

	lineStart := 0
	for i := 0; i < p.Line; i++ {
		next := strings.IndexByte(text[lineStart:], '\n')
		if next < 0 {
			return 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, p.Line, LineCount(text))
		}
		lineStart += next + 1
	}

	line := text[lineStart:]
	if end := strings.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}

	col := 0
	g := uniseg.NewGraphemes(line)
	for col < p.Column && g.Next() {
		col++
	}
	if col < p.Column {
		return lineStart + len(line), nil
	}
	if col == 0 {
		return lineStart, nil
	}
	_, to := g.Positions()
	return lineStart + to, nil
}
