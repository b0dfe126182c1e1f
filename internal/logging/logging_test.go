package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logrus.Level
		wantErr  bool
	}{
		{name: "Default", level: "", expected: logrus.WarnLevel},
		{name: "Debug", level: "debug", expected: logrus.DebugLevel},
		{name: "Upper Case", level: "INFO", expected: logrus.InfoLevel},
		{name: "Unknown", level: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithOutput(&bytes.Buffer{}, tt.level, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewWithOutput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger.GetLevel() != tt.expected {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.expected)
			}
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	logger.WithField("request_id", "01ABC").Debug("request completed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "01ABC" || entry["msg"] != "request completed" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewTextFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&buf, "", "text")
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	logger.Debug("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := NewWithOutput(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}
