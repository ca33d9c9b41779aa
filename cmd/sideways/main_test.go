package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"-no-config"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestRun_Swap(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "main.rs", "fn main() { foo(a, b); }\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"file offset", "", []string{"-offset", "16", file}, "fn main() { foo(b, a); }\n"},
		{"file position left", "", []string{"-pos", "1:20", "-dir", "left", file}, "fn main() { foo(b, a); }\n"},
		{"stdin", "f(x, y)", []string{"-ft", "go", "-offset", "2"}, "f(y, x)"},
		{"stdin dash", "f(x, y)", []string{"-offset", "2", "-"}, "f(y, x)"},
		{"boundary prints unchanged", "f(x, y)", []string{"-offset", "5"}, "f(x, y)"},
		{"wrap", "f(x, y)", []string{"-offset", "5", "-wrap"}, "f(y, x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.stdin, tt.args...)
			if code != exitOK {
				t.Fatalf("exit code = %d, stderr = %q", code, errOut)
			}
			if out != tt.want {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRun_SwapWrite(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.go", "call(one, two)\n")

	code, out, errOut := runCLI(t, "", "-offset", "5", "-w", file)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty with -w", out)
	}
	data, _ := os.ReadFile(file)
	if string(data) != "call(two, one)\n" {
		t.Errorf("file = %q", data)
	}
}

func TestRun_JSON(t *testing.T) {
	code, out, errOut := runCLI(t, "f(a, b)", "-offset", "2", "-json")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	res := gjson.Parse(out)
	if res.Get("text").String() != "f(b, a)" || res.Get("cursor").Int() != 5 || !res.Get("changed").Bool() {
		t.Errorf("json = %s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("json output is not pretty printed: %q", out)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.go", "f(a, b")

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{"unknown flag", "", []string{"-bogus"}, exitUsage},
		{"bad direction", "f(a)", []string{"-offset", "2", "-dir", "up"}, exitUsage},
		{"no cursor", "f(a)", nil, exitUsage},
		{"both cursors", "f(a)", []string{"-offset", "2", "-pos", "1:3"}, exitUsage},
		{"stdin write", "f(a)", []string{"-offset", "2", "-w"}, exitUsage},
		{"too many files", "", []string{"-offset", "2", "a", "b"}, exitUsage},
		{"unbalanced", "", []string{"-offset", "2", file}, exitError},
		{"missing file", "", []string{"-offset", "2", filepath.Join(dir, "nope.go")}, exitError},
		{"unknown filetype", "f(a)", []string{"-offset", "2", "-ft", "cobol"}, exitError},
		{"bad log level", "f(a)", []string{"-offset", "2", "-log-level", "loud"}, exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.code, errOut)
			}
			if errOut == "" {
				t.Error("stderr is empty")
			}
		})
	}
}

func TestRun_Info(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")
	if code != exitOK || !strings.HasPrefix(out, "sideways dev\n") {
		t.Errorf("-version = %d, %q", code, out)
	}

	code, _, errOut := runCLI(t, "", "-h")
	if code != exitOK || !strings.Contains(errOut, "Usage: sideways") {
		t.Errorf("-h = %d, %q", code, errOut)
	}

	code, out, _ = runCLI(t, "", "-list")
	if code != exitOK || !strings.Contains(out, "rust\n") || !strings.Contains(out, "default\n") {
		t.Errorf("-list = %d, %q", code, out)
	}

	code, out, _ = runCLI(t, "", "-list", "-json")
	if code != exitOK || !gjson.Get(out, "filetypes").IsArray() {
		t.Errorf("-list -json = %d, %q", code, out)
	}
}

func TestRun_Serve(t *testing.T) {
	in := `{"id":7,"method":"swap","text":"f(a, b)","offset":2,"direction":"right"}` + "\n"
	code, out, errOut := runCLI(t, in, "-serve")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if got := gjson.Get(out, "text").String(); got != "f(b, a)" {
		t.Errorf("serve output = %q", out)
	}
	if gjson.Get(out, "id").Int() != 7 {
		t.Errorf("serve id = %q", out)
	}
}

func TestRun_Script(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "s.lua", `return (sideways.swap(sideways.input, 2, "right"))`)

	code, out, errOut := runCLI(t, "f(a, b)", "-script", script)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if out != "f(b, a)" {
		t.Errorf("stdout = %q, want %q", out, "f(b, a)")
	}

	bad := writeFile(t, dir, "bad.lua", `error("nope")`)
	if code, _, _ := runCLI(t, "", "-script", bad); code != exitError {
		t.Errorf("failing script exit code = %d, want %d", code, exitError)
	}
}
