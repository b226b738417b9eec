package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"  WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "op", "refresh")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("output %q contains info entry at warn level", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=refresh") {
		t.Fatalf("output %q missing warn entry", out)
	}
}

func TestNewFile_AppendsAndCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "speakerctl.log")

	l, closer, err := NewFile(path, "info")
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	l.Error("request failed", "path", "/getdevice")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "path=/getdevice") {
		t.Fatalf("log file = %q, want logfmt entry", string(data))
	}
}
