package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{" Warning ", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"chatty", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Output(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "sideways"})

	log.Debug("hidden")
	log.WithFields(map[string]any{"zeta": 1, "alpha": "x"}).Info("swapped %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO] sideways: swapped 2 {alpha=x, zeta=1}") {
		t.Errorf("output = %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("log line does not end with a newline")
	}
}

func TestLogger_ChildSharesSettings(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})
	child := log.WithComponent("serve")

	child.Info("quiet")
	child.Warn("loud")
	if got := buf.String(); strings.Contains(got, "quiet") || !strings.Contains(got, "loud {component=serve}") {
		t.Errorf("output = %q", got)
	}

	log.SetLevel(LogLevelDebug)
	if log.Level() != LogLevelDebug {
		t.Errorf("Level() = %v, want debug", log.Level())
	}

	log.Disable()
	buf.Reset()
	log.Error("gone")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic.
	NullLogger.Info("nothing")
	NullLogger.WithField("k", "v").Error("nothing")
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger() = nil")
	}
}
