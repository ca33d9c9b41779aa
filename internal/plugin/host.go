package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sideways/internal/engine"
	"github.com/dshills/sideways/internal/plugin/api"
	plua "github.com/dshills/sideways/internal/plugin/lua"
)

// Host owns the Lua runtime that user scripts share.
type Host struct {
	mu sync.RWMutex

	// exec serializes work on the Lua runtime, including building argument
	// tables outside the state's own lock.
	exec sync.Mutex

	state  *plua.State
	module *api.Module

	hostState State
	err       error
	scripts   []string

	executionTimeout time.Duration
	input            *api.Input
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostExecutionTimeout sets the execution timeout for script calls.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithHostInput exposes a document to scripts as sideways.input.
func WithHostInput(path, text string) HostOption {
	return func(h *Host) {
		h.input = &api.Input{Path: path, Text: text}
	}
}

// NewHost creates a Lua runtime with the sideways module installed.
func NewHost(provider api.EngineProvider, opts ...HostOption) (*Host, error) {
	h := &Host{
		hostState:        StateReady,
		executionTimeout: plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	state, err := plua.NewState(plua.WithExecutionTimeout(h.executionTimeout))
	if err != nil {
		return nil, fmt.Errorf("creating lua state: %w", err)
	}

	h.module = api.NewModule(provider)
	h.module.SetInput(h.input)
	if err := state.RegisterModule(h.module); err != nil {
		state.Close()
		return nil, err
	}
	h.state = state
	return h, nil
}

// State returns the current host state.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.hostState
}

// Error returns the error of the last failed script.
func (h *Host) Error() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Scripts returns the scripts loaded successfully, in order.
func (h *Host) Scripts() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.scripts))
	copy(out, h.scripts)
	return out
}

// LoadScript runs a script for its side effects, typically registering
// profiles with sideways.define and hooks with sideways.on_swap.
func (h *Host) LoadScript(ctx context.Context, path string) error {
	_, _, err := h.Run(ctx, path)
	return err
}

// LoadScripts runs each script in order. A failing script does not stop
// the rest; all failures are returned joined.
func (h *Host) LoadScripts(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := h.LoadScript(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run executes a script and returns its first return value when that is a
// string.
func (h *Host) Run(ctx context.Context, path string) (string, bool, error) {
	if err := checkScript(path); err != nil {
		return "", false, h.fail(path, err)
	}

	h.exec.Lock()
	defer h.exec.Unlock()

	fn, err := h.state.LoadFile(path)
	if err != nil {
		return "", false, h.fail(path, err)
	}
	ret, err := h.state.CallFunction(ctx, fn)
	if err != nil {
		return "", false, h.fail(path, err)
	}

	h.mu.Lock()
	h.hostState = StateLoaded
	h.err = nil
	h.scripts = append(h.scripts, path)
	h.mu.Unlock()

	if len(ret) > 0 {
		if s, ok := ret[0].(lua.LString); ok {
			return string(s), true, nil
		}
	}
	return "", false, nil
}

// DoString runs a chunk of Lua in the shared runtime.
func (h *Host) DoString(ctx context.Context, code string) error {
	h.exec.Lock()
	defer h.exec.Unlock()
	return h.state.DoString(ctx, code)
}

// SwapEvent describes a completed swap for on_swap hooks.
type SwapEvent struct {
	Path     string
	Filetype string
	Result   engine.Result
}

// NotifySwap calls every on_swap hook with ev. Hook failures are joined.
func (h *Host) NotifySwap(ctx context.Context, ev SwapEvent) error {
	hooks := h.module.Hooks()
	if len(hooks) == 0 {
		return nil
	}

	h.exec.Lock()
	defer h.exec.Unlock()
	if h.state.IsClosed() {
		return plua.ErrStateClosed
	}

	L := h.state.LuaState()
	var errs []error
	for _, fn := range hooks {
		if _, err := h.state.CallFunction(ctx, fn, eventTable(L, ev)); err != nil {
			errs = append(errs, fmt.Errorf("on_swap hook: %w", err))
		}
	}
	return errors.Join(errs...)
}

// HasHooks reports whether any script registered an on_swap hook.
func (h *Host) HasHooks() bool {
	return len(h.module.Hooks()) > 0
}

// Close releases the Lua runtime. It waits for a running script or hook
// to finish.
func (h *Host) Close() error {
	h.exec.Lock()
	defer h.exec.Unlock()

	h.mu.Lock()
	h.hostState = StateClosed
	h.mu.Unlock()
	return h.state.Close()
}

func (h *Host) fail(path string, err error) error {
	err = &ScriptError{Script: path, Err: err}

	h.mu.Lock()
	h.hostState = StateError
	h.err = err
	h.mu.Unlock()
	return err
}

func checkScript(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".lua") {
		return ErrInvalidScript
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrScriptNotFound
		}
		return err
	}
	if info.IsDir() {
		return ErrInvalidScript
	}
	return nil
}

func eventTable(L *lua.LState, ev SwapEvent) *lua.LTable {
	t := L.CreateTable(0, 7)
	t.RawSetString("path", lua.LString(ev.Path))
	t.RawSetString("filetype", lua.LString(ev.Filetype))
	t.RawSetString("text", lua.LString(ev.Result.Text))
	t.RawSetString("cursor", lua.LNumber(ev.Result.Cursor))
	t.RawSetString("from", lua.LNumber(ev.Result.From+1))
	t.RawSetString("to", lua.LNumber(ev.Result.To+1))
	t.RawSetString("changed", lua.LBool(ev.Result.Changed))
	return t
}
