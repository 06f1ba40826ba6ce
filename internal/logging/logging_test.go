package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("installing target", "target", "aetosc")

	got := buf.String()
	if !strings.Contains(got, "installing target") {
		t.Errorf("output missing message: %q", got)
	}
	if !strings.Contains(got, "target=aetosc") {
		t.Errorf("output missing attribute: %q", got)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Warn("no package manager", "packages", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "no package manager" {
		t.Errorf("msg = %v, want %q", entry["msg"], "no package manager")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("should be dropped")
	logger.Warn("should appear")

	got := buf.String()
	if strings.Contains(got, "should be dropped") {
		t.Errorf("info message not filtered: %q", got)
	}
	if !strings.Contains(got, "should appear") {
		t.Errorf("warn message missing: %q", got)
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelInfo},
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{3, slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	// Must not panic and must accept all levels silently.
	logger.Debug("dropped")
	logger.Error("dropped")
}

func TestContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	ctx := NewContext(context.Background(), logger)
	FromContext(ctx).Info("via context")

	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("context logger not used: %q", buf.String())
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}
	if FromContext(nil) == nil { //nolint:staticcheck // deliberate nil context
		t.Fatal("FromContext(nil) must never return nil")
	}
}
