package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"bogus", false}, // unknown level defaults to info
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := NewWithWriter(tt.level, &buf)
		log.Debug("debug message")
		if got := buf.Len() > 0; got != tt.debugSeen {
			t.Errorf("level %q: debug emitted = %v, want %v", tt.level, got, tt.debugSeen)
		}
	}
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)
	log.Warn("something happened")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry["message"] != "something happened" {
		t.Errorf("message = %v, want %q", entry["message"], "something happened")
	}
	if entry["level"] != "warning" {
		t.Errorf("level = %v, want warning", entry["level"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp field missing")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("recommender").
		WithSessionID("abc-123").
		WithError(errors.New("boom")).
		WithFields(map[string]any{"label": "recommend", "k": 5}).
		Info("classified")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry["module"] != "recommender" {
		t.Errorf("module = %v", entry["module"])
	}
	if entry["session_id"] != "abc-123" {
		t.Errorf("session_id = %v", entry["session_id"])
	}
	if entry["label"] != "recommend" {
		t.Errorf("label = %v", entry["label"])
	}
}
