package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestHandler_LevelTags(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug:"},
		{slog.LevelInfo, "info:"},
		{slog.LevelWarn, "warning:"},
		{slog.LevelError, "error:"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		logger.Log(context.Background(), tt.level, "msg")
		if !strings.HasPrefix(buf.String(), tt.want) {
			t.Errorf("level %v: output %q, want prefix %q", tt.level, buf.String(), tt.want)
		}
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("op", "install")

	logger.Info("copying", "target", "aetos-editor")

	got := buf.String()
	if !strings.Contains(got, "op=install") {
		t.Errorf("missing bound attribute: %q", got)
	}
	if !strings.Contains(got, "target=aetos-editor") {
		t.Errorf("missing record attribute: %q", got)
	}
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).WithGroup("plan")

	logger.Info("step", "index", 2)

	if !strings.Contains(buf.String(), "plan.index=2") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}

func TestHandler_NoColorForNonTTY(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Error("boom")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ANSI escapes written to non-TTY buffer: %q", buf.String())
	}
}
