package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DE", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Inf", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"err", slog.LevelError},
		{"", LevelMissing},
		{"d", LevelMissing},
		{"verbose", LevelMissing},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.text); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "job", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "job=abc") {
		t.Errorf("warn record missing: %q", out)
	}

	if _, err := New(&buf, "loud"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("New(loud) error = %v, want ErrUnknownLevel", err)
	}
}

func TestErr(t *testing.T) {
	t.Parallel()

	if attr := Err(nil); !attr.Equal(slog.Attr{}) {
		t.Errorf("Err(nil) = %v, want empty attr", attr)
	}
	attr := Err(errors.New("boom"))
	if attr.Key != "err" || attr.Value.String() != "boom" {
		t.Errorf("Err() = %v", attr)
	}
}
