// Package api implements the sideways Lua module.
package api

import (
	"bytes"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/dshills/sideways/internal/engine"
	"github.com/dshills/sideways/internal/engine/buffer"
	"github.com/dshills/sideways/internal/engine/profile"
	plua "github.com/dshills/sideways/internal/plugin/lua"
)

// Version is reported to scripts as sideways.version.
const Version = "0.3.0"

// ModuleName is the global and require name of the module.
const ModuleName = "sideways"

// EngineProvider returns the engine scripts operate on. It is called on
// every function invocation so scripts see configuration reloads.
type EngineProvider func() *engine.Engine

// Input is the document a script runs against, exposed as
// sideways.input and sideways.path.
type Input struct {
	Path string
	Text string
}

// Module implements the sideways Lua module.
type Module struct {
	engine EngineProvider
	input  *Input

	mu    sync.Mutex
	hooks []*lua.LFunction
}

// NewModule creates the module. A nil provider uses an engine with the
// built-in profiles.
func NewModule(provider EngineProvider) *Module {
	if provider == nil {
		e := engine.New(nil)
		provider = func() *engine.Engine { return e }
	}
	return &Module{engine: provider}
}

// SetInput sets the document exposed to scripts. Must be called before
// Register.
func (m *Module) SetInput(in *Input) {
	m.input = in
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// Register installs the module as the sideways global and as a preloaded
// module for require("sideways").
func (m *Module) Register(L *lua.LState) error {
	mod := m.table(L)
	L.SetGlobal(ModuleName, mod)
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	return nil
}

func (m *Module) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "swap", L.NewFunction(m.swap))
	L.SetField(mod, "siblings", L.NewFunction(m.siblings))
	L.SetField(mod, "textobject", L.NewFunction(m.textobject))
	L.SetField(mod, "filetypes", L.NewFunction(m.filetypes))
	L.SetField(mod, "filetype", L.NewFunction(m.filetype))
	L.SetField(mod, "offset", L.NewFunction(m.offset))
	L.SetField(mod, "position", L.NewFunction(m.position))
	L.SetField(mod, "define", L.NewFunction(m.define))
	L.SetField(mod, "on_swap", L.NewFunction(m.onSwap))
	L.SetField(mod, "version", lua.LString(Version))

	if m.input != nil {
		L.SetField(mod, "input", lua.LString(m.input.Text))
		L.SetField(mod, "path", lua.LString(m.input.Path))
	}
	return mod
}

// Hooks returns the callbacks registered with on_swap.
func (m *Module) Hooks() []*lua.LFunction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*lua.LFunction, len(m.hooks))
	copy(out, m.hooks)
	return out
}

// swap(text, offset, dir[, filetype]) -> text, cursor, changed | nil, err, kind
// Exchanges the sibling at offset with its left or right neighbor.
// Hitting a group boundary is not an error: the text comes back unchanged.
func (m *Module) swap(L *lua.LState) int {
	text := L.CheckString(1)
	offset := L.CheckInt(2)
	dir, err := engine.ParseDirection(L.CheckString(3))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}

	res, err := m.engine().Swap(engine.Request{
		Text:      text,
		Offset:    offset,
		Direction: dir,
		Filetype:  L.OptString(4, ""),
	})
	if err != nil && !engine.IsBenign(err) {
		return pushError(L, err)
	}
	if err != nil {
		res.Text = text
	}

	L.Push(lua.LString(res.Text))
	L.Push(lua.LNumber(res.Cursor))
	L.Push(lua.LBool(res.Changed))
	return 3
}

// siblings(text, offset[, filetype]) -> {{start=, finish=, text=}...}, index | nil, err, kind
// Returns the sibling group around offset. index is 1-based.
func (m *Module) siblings(L *lua.LState) int {
	text := L.CheckString(1)
	offset := L.CheckInt(2)

	sib, err := m.engine().Siblings(engine.Request{
		Text:     text,
		Offset:   offset,
		Filetype: L.OptString(3, ""),
	})
	if err != nil {
		return pushError(L, err)
	}

	list := L.CreateTable(sib.Group.Len(), 0)
	for i, r := range sib.Group.Siblings {
		list.RawSetInt(i+1, rangeTable(L, text, r))
	}
	L.Push(list)
	L.Push(lua.LNumber(sib.Location.Index + 1))
	return 2
}

// textobject(text, offset[, around[, filetype]]) -> start, finish | nil, err, kind
// Returns the byte range of the sibling under the cursor, with its
// separator when around is true.
func (m *Module) textobject(L *lua.LState) int {
	text := L.CheckString(1)
	offset := L.CheckInt(2)
	around := L.OptBool(3, false)

	r, err := m.engine().TextObject(engine.Request{
		Text:     text,
		Offset:   offset,
		Filetype: L.OptString(4, ""),
	}, around)
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LNumber(r.Start))
	L.Push(lua.LNumber(r.End))
	return 2
}

// filetypes() -> {string...}
func (m *Module) filetypes(L *lua.LState) int {
	L.Push(plua.NewBridge(L).StringsToTable(m.engine().Filetypes()))
	return 1
}

// filetype(path) -> string | nil
// Returns the filetype registered for the path's extension.
func (m *Module) filetype(L *lua.LState) int {
	ft, ok := m.engine().Registry().FiletypeForPath(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(ft))
	return 1
}

// offset(text, line, column) -> offset | nil, err, kind
// Converts a 1-based line and grapheme column to a byte offset.
func (m *Module) offset(L *lua.LState) int {
	text := L.CheckString(1)
	p := buffer.Point{Line: L.CheckInt(2) - 1, Column: L.CheckInt(3) - 1}

	off, err := buffer.PointToOffset(text, p)
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LNumber(off))
	return 1
}

// position(text, offset) -> line, column | nil, err, kind
// Converts a byte offset to a 1-based line and grapheme column.
func (m *Module) position(L *lua.LState) int {
	text := L.CheckString(1)

	p, err := buffer.OffsetToPoint(text, L.CheckInt(2))
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LNumber(p.Line + 1))
	L.Push(lua.LNumber(p.Column + 1))
	return 2
}

// define(profile) -> true | nil, err
// Registers a profile. The table uses the same keys as a profile file:
//
//	sideways.define{ name = "zig", base = "c", extensions = {"zig"} }
func (m *Module) define(L *lua.LState) int {
	tbl := L.CheckTable(1)

	def, err := decodeDefinition(plua.NewBridge(L).ToGoValue(tbl))
	if err == nil {
		err = m.engine().Registry().Apply(def)
	}
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// on_swap(fn)
// Registers fn to be called with an event table after every swap the host
// performs: {path=, filetype=, text=, cursor=, from=, to=, changed=}.
// Indices are 1-based.
func (m *Module) onSwap(L *lua.LState) int {
	fn := L.CheckFunction(1)

	m.mu.Lock()
	m.hooks = append(m.hooks, fn)
	m.mu.Unlock()
	return 0
}

// decodeDefinition round-trips a converted Lua table through the YAML
// profile decoder so scripts and profile files share one schema.
func decodeDefinition(v interface{}) ([]profile.Definition, error) {
	if _, ok := v.(map[string]interface{}); !ok {
		return nil, fmt.Errorf("profile must be a table with named fields")
	}
	data, err := yaml.Marshal(map[string]interface{}{
		"profiles": []interface{}{v},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	defs, err := profile.Decode(bytes.TrimSpace(data), profile.FormatYAML)
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func rangeTable(L *lua.LState, text string, r buffer.Range) *lua.LTable {
	t := L.CreateTable(0, 3)
	t.RawSetString("start", lua.LNumber(r.Start))
	t.RawSetString("finish", lua.LNumber(r.End))
	t.RawSetString("text", lua.LString(r.Slice(text)))
	return t
}

// pushError pushes the nil, message, kind triple scripts test against.
func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	L.Push(lua.LString(engine.ErrorKind(err)))
	return 3
}
