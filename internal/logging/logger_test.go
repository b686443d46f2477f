package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("expected FormatJSON for \"json\"")
	}
	if ParseFormat("text") != FormatText {
		t.Error("expected FormatText for \"text\"")
	}
	if ParseFormat("yaml") != FormatText {
		t.Error("expected FormatText fallback")
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelDebug, FormatJSON)

	l.Info("test message", "key1", "value1", "key2", 42)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", buf.String(), err)
	}

	if entry["level"] != "info" {
		t.Errorf("expected level=info, got %v", entry["level"])
	}
	if entry["msg"] != "test message" {
		t.Errorf("expected msg='test message', got %v", entry["msg"])
	}
	if entry["key1"] != "value1" {
		t.Errorf("expected key1=value1, got %v", entry["key1"])
	}
	if entry["key2"] != float64(42) {
		t.Errorf("expected key2=42, got %v", entry["key2"])
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelDebug, FormatText)

	l.Info("test message", "zeta", 1, "alpha", 2)

	output := buf.String()
	if !strings.Contains(output, "[info] test message") {
		t.Errorf("expected level and message in output, got: %s", output)
	}
	if !strings.Contains(output, "alpha=2 zeta=1") {
		t.Errorf("expected fields in key order, got: %s", output)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelWarn, FormatText)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be present")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be present")
	}

	if l.Enabled(LevelInfo) {
		t.Error("info should not be enabled at warn level")
	}
	if !l.Enabled(LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestLoggerWithFieldsIsolation(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelDebug, FormatJSON)

	child := l.WithFields("child_field", "value")

	l.Info("parent message")
	var parentEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parentEntry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if _, ok := parentEntry["child_field"]; ok {
		t.Error("parent logger should not have child's fields")
	}

	buf.Reset()
	child.Info("child message")
	var childEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &childEntry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if childEntry["child_field"] != "value" {
		t.Errorf("child logger should have its fields, got %v", childEntry["child_field"])
	}
}

func TestWithInstanceID(t *testing.T) {
	var buf bytes.Buffer
	l, id := WithInstanceID(NewWriter(&buf, LevelDebug, FormatJSON))
	if id == "" {
		t.Fatal("expected a non-empty instance ID")
	}

	l.Debug("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry[InstanceIDField] != id {
		t.Errorf("expected %s=%s, got %v", InstanceIDField, id, entry[InstanceIDField])
	}

	if other := NewInstanceID(); other == id {
		t.Errorf("instance IDs should be unique, got %s twice", id)
	}
}

func TestNewLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuplemap.log")

	l := New(Config{Level: "debug", Format: "text", Output: path})
	l.Debug("written to file", "n", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file n=3") {
		t.Errorf("unexpected log file content: %q", data)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()

	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.WithFields("key", "value") == nil {
		t.Error("WithFields returned nil")
	}
	if l.Enabled(LevelError) {
		t.Error("nop logger should report every level disabled")
	}
}
