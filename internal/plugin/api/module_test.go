package api

import (
	"context"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sideways/internal/engine"
	plua "github.com/dshills/sideways/internal/plugin/lua"
)

func newTestState(t *testing.T, m *Module) *plua.State {
	t.Helper()
	state, err := plua.NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })

	if err := state.RegisterModule(m); err != nil {
		t.Fatalf("RegisterModule() error = %v", err)
	}
	return state
}

func run(t *testing.T, state *plua.State, code string) {
	t.Helper()
	if err := state.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
}

func global(state *plua.State, name string) string {
	return state.GetGlobal(name).String()
}

func TestModule_Swap(t *testing.T) {
	state := newTestState(t, NewModule(nil))

	tests := []struct {
		name    string
		code    string
		text    string
		cursor  string
		changed string
	}{
		{
			name:    "right",
			code:    `text, cursor, changed = sideways.swap("foo(a, b)", 4, "right")`,
			text:    "foo(b, a)",
			cursor:  "7",
			changed: "true",
		},
		{
			name:    "left with filetype",
			code:    `text, cursor, changed = sideways.swap("HashMap<K, V>", 11, "l", "rust")`,
			text:    "HashMap<V, K>",
			cursor:  "8",
			changed: "true",
		},
		{
			name:    "boundary is a no-op",
			code:    `text, cursor, changed = sideways.swap("foo(a, b)", 7, "right")`,
			text:    "foo(a, b)",
			cursor:  "7",
			changed: "false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, state, tt.code)
			if got := global(state, "text"); got != tt.text {
				t.Errorf("text = %q, want %q", got, tt.text)
			}
			if got := global(state, "cursor"); got != tt.cursor {
				t.Errorf("cursor = %s, want %s", got, tt.cursor)
			}
			if got := global(state, "changed"); got != tt.changed {
				t.Errorf("changed = %s, want %s", got, tt.changed)
			}
		})
	}
}

func TestModule_SwapErrors(t *testing.T) {
	state := newTestState(t, NewModule(nil))

	run(t, state, `text, msg, kind = sideways.swap("foo(a, b", 4, "right")`)
	if state.GetGlobal("text") != lua.LNil {
		t.Errorf("text = %v, want nil", state.GetGlobal("text"))
	}
	if global(state, "msg") == "" {
		t.Error("msg is empty")
	}
	if got := global(state, "kind"); got != "UnbalancedDelimiters" {
		t.Errorf("kind = %q, want UnbalancedDelimiters", got)
	}

	run(t, state, `text, msg, kind = sideways.swap("x = 1", 2, "left", "cobol")`)
	if got := global(state, "kind"); got != "UnknownFiletype" {
		t.Errorf("kind = %q, want UnknownFiletype", got)
	}

	err := state.DoString(context.Background(), `sideways.swap("foo(a, b)", 4, "up")`)
	if err == nil {
		t.Error("swap with a bad direction should raise")
	}
}

func TestModule_SiblingsAndTextObject(t *testing.T) {
	state := newTestState(t, NewModule(nil))

	run(t, state, `
		list, index = sideways.siblings("foo(a, bb, c)", 7)
		count = #list
		second = list[2].text
		second_start = list[2].start
		second_finish = list[2].finish
		inner_start, inner_finish = sideways.textobject("foo(a, bb, c)", 7)
		around_start, around_finish = sideways.textobject("foo(a, bb, c)", 7, true)
		none, msg, kind = sideways.siblings("x = 1", 2)
	`)

	want := map[string]string{
		"count":         "3",
		"index":         "2",
		"second":        "bb",
		"second_start":  "7",
		"second_finish": "9",
		"inner_start":   "7",
		"inner_finish":  "9",
		"around_start":  "7",
		"around_finish": "11",
		"kind":          "CursorNotInSiblingGroup",
	}
	for name, w := range want {
		if got := global(state, name); got != w {
			t.Errorf("%s = %q, want %q", name, got, w)
		}
	}
	if state.GetGlobal("none") != lua.LNil {
		t.Errorf("none = %v, want nil", state.GetGlobal("none"))
	}
}

func TestModule_Positions(t *testing.T) {
	state := newTestState(t, NewModule(nil))

	run(t, state, `
		off = sideways.offset("ab\ncd", 2, 2)
		line, col = sideways.position("ab\ncd", 4)
		bad, msg, kind = sideways.offset("ab", 5, 1)
	`)

	for name, w := range map[string]string{"off": "4", "line": "2", "col": "2", "kind": "OffsetOutOfRange"} {
		if got := global(state, name); got != w {
			t.Errorf("%s = %q, want %q", name, got, w)
		}
	}
}

func TestModule_FiletypesAndDefine(t *testing.T) {
	e := engine.New(nil)
	state := newTestState(t, NewModule(func() *engine.Engine { return e }))

	run(t, state, `
		local names = sideways.filetypes()
		has_rust = false
		for _, n in ipairs(names) do
			if n == "rust" then has_rust = true end
		end
		before = sideways.filetype("main.zig")
		ok = sideways.define{ name = "zig", base = "c", extensions = {".zig"} }
		after = sideways.filetype("main.zig")
		bad, err = sideways.define{ name = "broken", base = "nope" }
		unknown, unknown_err = sideways.define{ name = "x", colour = "red" }
	`)

	if got := global(state, "has_rust"); got != "true" {
		t.Error("filetypes() does not list rust")
	}
	if state.GetGlobal("before") != lua.LNil {
		t.Errorf("filetype before define = %v, want nil", state.GetGlobal("before"))
	}
	if got := global(state, "ok"); got != "true" {
		t.Errorf("define() = %s, want true", got)
	}
	if got := global(state, "after"); got != "zig" {
		t.Errorf("filetype after define = %q, want zig", got)
	}
	if !e.Registry().Has("zig") {
		t.Error("registry does not have zig")
	}
	if state.GetGlobal("bad") != lua.LNil || global(state, "err") == "" {
		t.Error("define with unknown base should fail")
	}
	if state.GetGlobal("unknown") != lua.LNil || global(state, "unknown_err") == "" {
		t.Error("define with unknown field should fail")
	}
}

func TestModule_RequireInputAndHooks(t *testing.T) {
	m := NewModule(nil)
	m.SetInput(&Input{Path: "lib.rs", Text: "f(a, b)"})
	state := newTestState(t, m)

	run(t, state, `
		local s = require("sideways")
		same = s == sideways
		version = s.version
		input = s.input
		path = s.path
		s.on_swap(function(ev) last = ev end)
	`)

	if got := global(state, "same"); got != "true" {
		t.Error("require(sideways) is not the global table")
	}
	if got := global(state, "version"); got != Version {
		t.Errorf("version = %q, want %q", got, Version)
	}
	if got := global(state, "input"); got != "f(a, b)" {
		t.Errorf("input = %q", got)
	}
	if got := global(state, "path"); got != "lib.rs" {
		t.Errorf("path = %q", got)
	}
	if got := len(m.Hooks()); got != 1 {
		t.Errorf("len(Hooks()) = %d, want 1", got)
	}
}
