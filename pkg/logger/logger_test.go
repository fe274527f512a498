package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", TraceLevel},
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"Error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	if err := Initialize(Config{Level: WarnLevel, Component: "test"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message logged despite warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing from output")
	}
}

func TestJSONOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, JSON: true, Component: "licet"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("structured message", String("key", "value"), Int("count", 3))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Message != "structured message" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Component != "licet" {
		t.Errorf("unexpected component: %q", entry.Component)
	}
	if entry.Fields["key"] != "value" {
		t.Errorf("missing string field, got %v", entry.Fields)
	}
}

func TestFieldHelpers(t *testing.T) {
	f := String("a", "b")
	if f.Key != "a" || f.Value != "b" {
		t.Errorf("String field wrong: %+v", f)
	}
	if f := Int("n", 7); f.Value != 7 {
		t.Errorf("Int field wrong: %+v", f)
	}
	if f := Bool("ok", true); f.Value != true {
		t.Errorf("Bool field wrong: %+v", f)
	}
}
