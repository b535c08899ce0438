package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"Info", InfoLevel},
		{"warning", WarnLevel},
		{"WARN", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Warn("event vertex survived preprocessing", Character("hen"), VertexID(7), Label("rain"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "WARN" {
		t.Errorf("Level = %v, want WARN", entry.Level)
	}
	if entry.Fields["character"] != "hen" {
		t.Errorf("Fields[character] = %v, want hen", entry.Fields["character"])
	}
	// JSON numbers decode as float64
	if entry.Fields["vertex_id"] != float64(7) {
		t.Errorf("Fields[vertex_id] = %v, want 7", entry.Fields["vertex_id"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("Expected nothing below WARN, got %q", buf.String())
	}

	logger.Error("failed", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("Expected error field, got %q", buf.String())
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("postprocess"), RunID("r1"))
	child.Info("found unit", Unit("Nested Goal"), Count(2))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["component"] != "postprocess" || entry.Fields["run_id"] != "r1" {
		t.Errorf("Preset fields missing: %v", entry.Fields)
	}
	if entry.Fields["unit"] != "Nested Goal" {
		t.Errorf("unit field = %v", entry.Fields["unit"])
	}
}

// TestJSONLogger_SharedLevel checks that children follow the parent's level
func TestJSONLogger_SharedLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("units"))

	logger.SetLevel(ErrorLevel)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Error("Child should follow the parent's level")
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v, want ERROR", child.GetLevel())
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")
	if strings.Contains(buf.String(), "fields") {
		t.Errorf("Expected fields to be omitted, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Warn("ignored")
	if l.With(Step(1)) == nil {
		t.Error("With should return a logger")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	StartTimer(logger, "annotation pass", Character("hen")).End(Count(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["latency"] == nil || entry.Fields["character"] != "hen" || entry.Fields["count"] != float64(3) {
		t.Errorf("Unexpected fields: %v", entry.Fields)
	}
}
