package layoutcopy

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message missing")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message missing")
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo).WithField("section", 3)

	logger.Info("copying layout")

	output := buf.String()
	if !strings.Contains(output, "[INFO]") {
		t.Errorf("missing level marker in %q", output)
	}
	if !strings.Contains(output, "section=3") {
		t.Errorf("missing field in %q", output)
	}
}

func TestLoggerNilWriter(t *testing.T) {
	logger := NewLogger(nil, LogDebug)
	// must not panic
	logger.Info("into the void")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogDebug},
		{"info", LogInfo},
		{"warn", LogWarn},
		{"error", LogError},
		{"off", LogOff},
		{"bogus", LogInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
