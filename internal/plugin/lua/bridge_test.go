package lua

import (
	"context"
	"os"
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestBridgeToGoValue(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(context.Background(), `
		v = {
			name = "x",
			count = 3,
			ratio = 0.5,
			on = true,
			list = {"a", "b"},
		}
	`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	b := NewBridge(state.LuaState())
	got := b.ToGoValue(state.GetGlobal("v"))
	want := map[string]interface{}{
		"name":  "x",
		"count": int64(3),
		"ratio": 0.5,
		"on":    true,
		"list":  []interface{}{"a", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue() = %#v, want %#v", got, want)
	}
}

func TestBridgeToLuaValue(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	b := NewBridge(state.LuaState())
	tbl, ok := b.ToLuaValue(map[string]interface{}{
		"text":  "a, b",
		"start": 4,
		"list":  []string{"x", "y"},
	}).(*glua.LTable)
	if !ok {
		t.Fatal("ToLuaValue(map) is not a table")
	}

	if s, ok := b.GetTableString(tbl, "text"); !ok || s != "a, b" {
		t.Errorf("text = %q, %v", s, ok)
	}
	if n, ok := b.GetTableInt(tbl, "start"); !ok || n != 4 {
		t.Errorf("start = %d, %v", n, ok)
	}
	if _, ok := b.GetTableBool(tbl, "text"); ok {
		t.Error("GetTableBool(text) should report false for a string")
	}
	list, ok := tbl.RawGetString("list").(*glua.LTable)
	if !ok || list.Len() != 2 || list.RawGetInt(2).String() != "y" {
		t.Errorf("list = %v", tbl.RawGetString("list"))
	}
}
