package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", "json")
	defer InitWriter(os.Stderr, "info", "plain")
	Info("hidden %d", 1)
	Warn("shown %d", 2)
	Error("shown %d", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") || !strings.Contains(out, "[ERROR] shown 3") {
		t.Errorf("missing messages: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": DebugLevel, "INFO": InfoLevel, "warning": WarnLevel, "error": ErrorLevel, "bogus": InfoLevel}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
