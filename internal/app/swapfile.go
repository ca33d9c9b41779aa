package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/sideways/internal/engine"
)

// SwapFileRequest describes a swap on a file or on stdin.
type SwapFileRequest struct {
	// Path is the input file. Empty or "-" reads stdin.
	Path string

	// Filetype overrides detection from Path.
	Filetype string

	// Offset is the cursor as a byte offset, or -1 when Position is used.
	Offset int

	// Position is the cursor as 1-based LINE:COL, COL in characters.
	Position string

	Direction engine.Direction

	// Write saves a changed result back to Path.
	Write bool
}

// SwapFileResult is the outcome of SwapFile.
type SwapFileResult struct {
	engine.Result

	// Path is the file that was read, empty for stdin.
	Path string

	// Written reports whether the file was rewritten.
	Written bool
}

// SwapFile reads the input, swaps the sibling under the cursor and, when
// requested, writes the result back with the file's permissions intact.
// A swap at a group boundary returns the unchanged text and
// engine.ErrNoAdjacentSibling.
func (app *Application) SwapFile(ctx context.Context, req SwapFileRequest) (SwapFileResult, error) {
	stdin := req.Path == "" || req.Path == "-"
	if stdin && req.Write {
		return SwapFileResult{}, ErrStdinWrite
	}

	text, err := app.readInput(req.Path)
	if err != nil {
		return SwapFileResult{}, err
	}

	ereq := engine.Request{
		Text:      text,
		Direction: req.Direction,
		Filetype:  req.Filetype,
	}
	if !stdin {
		ereq.Path = req.Path
	}
	if err := setCursor(&ereq, req.Offset, req.Position); err != nil {
		return SwapFileResult{}, err
	}

	res, err := app.Swap(ctx, ereq)
	out := SwapFileResult{Result: res, Path: ereq.Path}
	if err != nil {
		return out, err
	}

	if req.Write && res.Changed {
		if err := writeFile(req.Path, res.Text); err != nil {
			return out, NewOperationError("write", req.Path, err)
		}
		out.Written = true
		app.Logger().Debug("swapped %s siblings %d and %d", req.Path, res.From, res.To)
	}
	return out, nil
}

// readInput returns the contents of path, or of stdin for "" and "-".
func (app *Application) readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(app.opts.Stdin)
		if err != nil {
			return "", NewOperationError("read", "stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewOperationError("read", path, err)
	}
	return string(data), nil
}

func setCursor(req *engine.Request, offset int, position string) error {
	hasOffset := offset >= 0
	hasPos := position != ""

	switch {
	case hasOffset && hasPos:
		return ErrConflictingCursor
	case hasPos:
		p, err := ParsePosition(position)
		if err != nil {
			return err
		}
		req.Point = &p
	case hasOffset:
		req.Offset = offset
	default:
		return ErrNoCursor
	}
	return nil
}

// ParsePosition parses a 1-based LINE:COL into a 0-based point.
func ParsePosition(s string) (engine.Point, error) {
	line, col, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return engine.Point{}, fmt.Errorf("%w: %q, want LINE:COL", ErrInvalidPosition, s)
	}
	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return engine.Point{}, fmt.Errorf("%w: line %q", ErrInvalidPosition, line)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 1 {
		return engine.Point{}, fmt.Errorf("%w: column %q", ErrInvalidPosition, col)
	}
	return engine.Point{Line: l - 1, Column: c - 1}, nil
}

// writeFile replaces path's contents, keeping its permission bits.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
