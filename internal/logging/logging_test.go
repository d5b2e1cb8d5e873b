package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, Prefix: "test"})

	logger.Debug("hidden")
	logger.Info("opened %s", "notes.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written below level")
	}
	if !strings.Contains(out, "[INFO] test: opened notes.txt") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf}).
		WithComponent("server").
		WithFields(map[string]any{"client": "c1", "action": "edit.undo"})

	logger.Warn("failed")

	if !strings.Contains(buf.String(), "failed {action=edit.undo, client=c1, component=server}") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogger_DerivedShareLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelInfo, Output: &buf})
	child := parent.WithField("k", "v")

	parent.SetLevel(LevelError)
	child.Warn("dropped")
	if buf.Len() != 0 {
		t.Errorf("child ignored parent level: %q", buf.String())
	}
	if child.Level() != LevelError {
		t.Errorf("child level = %v", child.Level())
	}

	parent.WithField("extra", 1)
	child.Error("kept")
	if strings.Contains(buf.String(), "extra") {
		t.Error("WithField must not mutate siblings")
	}
}

func TestNull(t *testing.T) {
	logger := Null()
	logger.SetLevel(LevelDebug)
	logger.Error("nothing")
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(Config{Output: &buf}))
	defer SetDefault(prev)

	Default().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("SetDefault not used: %q", buf.String())
	}
}
