package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/sideways/internal/engine"
)

// MaxRequestSize bounds one request line.
const MaxRequestSize = 16 * 1024 * 1024

// Error kinds for malformed requests. Engine failures use engine.ErrorKind.
const (
	KindInvalidRequest = "InvalidRequest"
	KindUnknownMethod  = "UnknownMethod"
)

// requestError is a protocol-level failure.
type requestError struct {
	kind string
	msg  string
}

func (e *requestError) Error() string { return e.msg }

func invalid(msg string) error {
	return &requestError{kind: KindInvalidRequest, msg: msg}
}

// Serve answers newline-delimited JSON requests from r on w, one response
// line per request, until r reaches EOF or ctx is done. Requests are
// handled in order.
//
//	{"id":1,"method":"swap","text":"f(a, b)","offset":2,"direction":"right","filetype":"go"}
//	{"id":1,"ok":true,"text":"f(b, a)","cursor":5,"changed":true,"from":0,"to":1}
func (app *Application) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log := app.Logger().WithComponent("serve")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRequestSize)
	bw := bufio.NewWriter(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp := app.handle(ctx, line)
		if _, err := bw.Write(append(resp, '\n')); err != nil {
			return NewOperationError("serve", "", err)
		}
		if err := bw.Flush(); err != nil {
			return NewOperationError("serve", "", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("reading requests: %v", err)
		return NewOperationError("serve", "", err)
	}
	return nil
}

// handle answers one request line.
func (app *Application) handle(ctx context.Context, line []byte) []byte {
	if !gjson.ValidBytes(line) {
		return errorResponse(newID(), invalid("malformed JSON"))
	}
	req := gjson.ParseBytes(line)
	if !req.IsObject() {
		return errorResponse(newID(), invalid("request must be a JSON object"))
	}

	id := newID()
	if v := req.Get("id"); v.Exists() {
		id = v.Raw
	}

	method := req.Get("method").String()
	app.Logger().WithComponent("serve").Debug("request %s %s", id, method)

	out := okResponse(id)
	var err error
	switch method {
	case "swap":
		out, err = app.serveSwap(ctx, req, out)
	case "siblings":
		out, err = app.serveSiblings(req, out)
	case "textobject":
		out, err = app.serveTextObject(req, out)
	case "filetypes":
		out, err = sjson.SetBytes(out, "filetypes", app.Engine().Filetypes())
	case "reload":
		err = app.Reload(ctx)
	case "stats":
		out, err = app.serveStats(out)
	case "":
		err = invalid("missing method")
	default:
		err = &requestError{kind: KindUnknownMethod, msg: "unknown method " + method}
	}
	if err != nil {
		return errorResponse(id, err)
	}
	return out
}

func (app *Application) serveSwap(ctx context.Context, req gjson.Result, out []byte) ([]byte, error) {
	ereq, err := engineRequest(req)
	if err != nil {
		return nil, err
	}
	dir, err := engine.ParseDirection(req.Get("direction").String())
	if err != nil {
		return nil, invalid(err.Error())
	}
	ereq.Direction = dir

	res, err := app.Swap(ctx, ereq)
	if err != nil && !engine.IsBenign(err) {
		return nil, err
	}

	return setFields(out, map[string]any{
		"text":    res.Text,
		"cursor":  res.Cursor,
		"changed": res.Changed,
		"from":    res.From,
		"to":      res.To,
	})
}

func (app *Application) serveSiblings(req gjson.Result, out []byte) ([]byte, error) {
	ereq, err := engineRequest(req)
	if err != nil {
		return nil, err
	}

	timer := StartTimer()
	sib, err := app.Engine().Siblings(ereq)
	app.metrics.RecordRequest(timer.Elapsed())
	if err != nil {
		app.metrics.RecordError()
		return nil, err
	}

	out, err = setFields(out, map[string]any{
		"filetype": sib.Filetype,
		"index":    sib.Location.Index,
	})
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "siblings", []byte("[]")); err != nil {
		return nil, err
	}
	for _, r := range sib.Group.Siblings {
		out, err = sjson.SetBytes(out, "siblings.-1", map[string]any{
			"start": r.Start,
			"end":   r.End,
			"text":  r.Slice(ereq.Text),
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (app *Application) serveTextObject(req gjson.Result, out []byte) ([]byte, error) {
	ereq, err := engineRequest(req)
	if err != nil {
		return nil, err
	}

	timer := StartTimer()
	r, err := app.Engine().TextObject(ereq, req.Get("around").Bool())
	app.metrics.RecordRequest(timer.Elapsed())
	if err != nil {
		app.metrics.RecordError()
		return nil, err
	}
	return setFields(out, map[string]any{
		"start": r.Start,
		"end":   r.End,
	})
}

func (app *Application) serveStats(out []byte) ([]byte, error) {
	s := app.metrics.Snapshot()
	return setFields(out, map[string]any{
		"uptime_ms":  s.Uptime.Milliseconds(),
		"requests":   s.Requests,
		"swaps":      s.Swaps,
		"noops":      s.Noops,
		"errors":     s.Errors,
		"reloads":    s.Reloads,
		"avg_ns":     s.AvgNs,
		"max_ns":     s.MaxNs,
		"error_rate": s.ErrorRate(),
	})
}

// engineRequest reads the text, cursor and filetype fields shared by the
// text methods. The cursor is either offset, or line and column (1-based).
func engineRequest(req gjson.Result) (engine.Request, error) {
	text := req.Get("text")
	if text.Type != gjson.String {
		return engine.Request{}, invalid("text must be a string")
	}
	ereq := engine.Request{
		Text:     text.String(),
		Filetype: req.Get("filetype").String(),
		Path:     req.Get("path").String(),
	}

	offset := req.Get("offset")
	line, col := req.Get("line"), req.Get("column")
	switch {
	case offset.Exists() && line.Exists():
		return engine.Request{}, invalid(ErrConflictingCursor.Error())
	case offset.Exists():
		n, ok := integer(offset)
		if !ok {
			return engine.Request{}, invalid("offset must be an integer")
		}
		ereq.Offset = n
	case line.Exists() && col.Exists():
		l, lok := integer(line)
		c, cok := integer(col)
		if !lok || !cok {
			return engine.Request{}, invalid("line and column must be integers")
		}
		if l < 1 || c < 1 {
			return engine.Request{}, invalid("line and column are 1-based")
		}
		ereq.Point = &engine.Point{Line: l - 1, Column: c - 1}
	default:
		return engine.Request{}, invalid(ErrNoCursor.Error())
	}
	return ereq, nil
}

// integer returns v as an int when it is a JSON number without a
// fractional part.
func integer(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	if v.Num > math.MaxInt32 || v.Num < math.MinInt32 {
		return 0, false
	}
	return int(v.Num), true
}

// setFields adds fields to out in key order.
func setFields(out []byte, fields map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		if out, err = sjson.SetBytes(out, k, fields[k]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func okResponse(id string) []byte {
	out, _ := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	out, _ = sjson.SetBytes(out, "ok", true)
	return out
}

func errorResponse(id string, err error) []byte {
	kind := engine.ErrorKind(err)
	var rerr *requestError
	if errors.As(err, &rerr) {
		kind = rerr.kind
	}

	out, _ := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	out, _ = sjson.SetBytes(out, "ok", false)
	out, _ = sjson.SetBytes(out, "error.kind", kind)
	out, _ = sjson.SetBytes(out, "error.message", err.Error())
	return out
}

// newID returns a JSON string id for requests that carry none.
func newID() string {
	return `"` + uuid.NewString() + `"`
}
