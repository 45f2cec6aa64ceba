package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseLevel(tc.in); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	t.Setenv("GO_ENV", "")

	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "faces", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "faces=2") {
		t.Errorf("expected warn message with attrs, got %q", out)
	}
}

func TestNew_JSONInProduction(t *testing.T) {
	t.Setenv("GO_ENV", "production")

	var buf bytes.Buffer
	New(&buf, "info").Info("frame", "width", 640)

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"width":640`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestScope_TagsGlobalLoggerOnce(t *testing.T) {
	t.Setenv("GO_ENV", "")

	prevBase, prevLogger := base, logger
	t.Cleanup(func() {
		base, logger = prevBase, prevLogger
		if prevLogger != nil {
			slog.SetDefault(prevLogger)
		}
	})

	var buf bytes.Buffer
	setBase(New(&buf, "debug"))

	Scope("run", "first")
	Scope("run", "second")
	Info("camera opened", "device", 0)
	slog.Debug("detection", "faces", 1)

	out := buf.String()
	if strings.Contains(out, "run=first") {
		t.Errorf("earlier scope leaked into output: %q", out)
	}
	if got := strings.Count(out, "run=second"); got != 2 {
		t.Errorf("expected both lines tagged with the current run, got %d in %q", got, out)
	}
}
