package lua

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestNewState(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
	if state.LuaState() == nil {
		t.Error("NewState() LuaState() is nil")
	}
}

func TestStateDoString(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(context.Background(), `x = string.upper("ab") .. math.max(1, 2)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x").String(); got != "AB2" {
		t.Errorf("x = %q, want %q", got, "AB2")
	}

	if err := state.DoString(context.Background(), `error("boom")`); err == nil {
		t.Error("DoString(error) should fail")
	}
}

func TestStateDoFile(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	path := t.TempDir() + "/script.lua"
	writeFile(t, path, "answer = 6 * 7\n")

	if err := state.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if n, ok := state.GetGlobal("answer").(glua.LNumber); !ok || n != 42 {
		t.Errorf("answer = %v, want 42", state.GetGlobal("answer"))
	}
}

func TestStateCall(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	ctx := context.Background()
	if err := state.DoString(ctx, `
		function pair(a, b) return b, a end
		function nothing() end
		notfn = 3
	`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	got, err := state.Call(ctx, "pair", glua.LString("a"), glua.LString("b"))
	if err != nil {
		t.Fatalf("Call(pair) error = %v", err)
	}
	if len(got) != 2 || got[0].String() != "b" || got[1].String() != "a" {
		t.Errorf("Call(pair) = %v, want [b a]", got)
	}

	got, err = state.Call(ctx, "nothing")
	if err != nil {
		t.Fatalf("Call(nothing) error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Call(nothing) = %#v, want empty slice", got)
	}

	if _, err := state.Call(ctx, "notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(notfn) error = %v, want ErrNotFunction", err)
	}
	if _, err := state.Call(ctx, "missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStateCallFunctionRestoresStack(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	ctx := context.Background()
	if err := state.DoString(ctx, `function fail() error("nope") end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	fn := state.GetGlobal("fail").(*glua.LFunction)

	top := state.LuaState().GetTop()
	if _, err := state.CallFunction(ctx, fn); err == nil {
		t.Fatal("CallFunction(fail) should fail")
	}
	if got := state.LuaState().GetTop(); got != top {
		t.Errorf("stack top = %d after failed call, want %d", got, top)
	}
}

func TestStateTimeout(t *testing.T) {
	state, err := NewState(WithExecutionTimeout(50 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	err = state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString(loop) error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(context.Background(), `y = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if err := state.DoString(ctx, `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Call(ctx, "f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal() on closed state should be nil")
	}
}

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}
}

type testModule struct {
	name string
}

func (m testModule) Name() string { return m.name }

func (m testModule) Register(L *glua.LState) error {
	L.PreloadModule(m.name, func(L *glua.LState) int {
		mod := L.NewTable()
		L.SetField(mod, "hello", glua.LString("world"))
		L.Push(mod)
		return 1
	})
	return nil
}

func TestSandboxRequire(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	ctx := context.Background()
	if err := state.DoString(ctx, `require("greet")`); err == nil {
		t.Error("require of unregistered module should fail")
	}

	if err := state.RegisterModule(testModule{name: "greet"}); err != nil {
		t.Fatalf("RegisterModule() error = %v", err)
	}
	if err := state.DoString(ctx, `v = require("greet").hello; s = require("string").upper("x")`); err != nil {
		t.Fatalf("require error = %v", err)
	}
	if got := state.GetGlobal("v").String(); got != "world" {
		t.Errorf("v = %q, want %q", got, "world")
	}
	if err := state.RegisterModule(testModule{name: "greet"}); !errors.Is(err, ErrModuleRegistered) {
		t.Errorf("second RegisterModule() error = %v, want %v", err, ErrModuleRegistered)
	}

	err = state.DoString(ctx, `require("os")`)
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("require(os) error = %v, want not available", err)
	}
}
