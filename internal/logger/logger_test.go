package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     WARN,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	logger.Debug("debug message")      // Should be filtered
	logger.Info("info message")        // Should be filtered
	logger.Warn("warn message")        // Should appear
	logger.Error("error message", nil) // Should appear

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 log lines with WARN level, got %d", len(lines))
	}
	for i, line := range lines {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i+1, err)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "chart",
	})

	logger.Error("draw failed", errors.New("no state"), Fields{
		"width": 800,
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("Expected level ERROR, got %s", entry.Level)
	}
	if entry.Component != "chart" {
		t.Errorf("Expected component 'chart', got %s", entry.Component)
	}
	if entry.Error != "no state" {
		t.Errorf("Expected error 'no state', got %s", entry.Error)
	}
	if entry.Fields["width"] != float64(800) { // JSON numbers are float64
		t.Errorf("Expected field width=800, got %v", entry.Fields["width"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf})
	logger.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	logger.WithComponent("animation").Debug("frame", Fields{"b": 2, "a": 1})

	want := "[2026-10-16T12:00:00Z] DEBUG [animation] frame fields={a=1, b=2}\n"
	if got := buf.String(); got != want {
		t.Errorf("Unexpected text output:\n got: %q\nwant: %q", got, want)
	}
}

func TestWithComponentSharesLevel(t *testing.T) {
	var buf bytes.Buffer

	root := New(Config{Level: INFO, Format: TextFormat, Output: &buf})
	child := root.WithComponent("interaction")

	root.SetLevel(ERROR)
	child.Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("Expected child logger to follow parent level, got %q", buf.String())
	}
	if child.Enabled(INFO) {
		t.Error("Expected INFO to be disabled")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing", errors.New("boom"))
	if l.Enabled(FATAL) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := map[string]LogLevel{"debug": DEBUG, "INFO": INFO, "warning": WARN, "Error": ERROR}
	for in, want := range levels {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("Expected unknown level to be rejected")
	}

	if f, ok := ParseFormat("JSON"); !ok || f != JSONFormat {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, ok)
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Error("Expected unknown format to be rejected")
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: WARN, Format: TextFormat, Output: &buf}))

	Configure("debug", "json")
	Component("export").Debug("stored", Fields{"file": "frame-001.png"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output after Configure, got %q: %v", buf.String(), err)
	}
	if entry.Component != "export" {
		t.Errorf("Expected component 'export', got %s", entry.Component)
	}
}
