package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsArePrefixed(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf)

	l.Info("hello")
	l.Warnf("saved %d bytes", 42)
	l.Error("boom")

	out := buf.String()
	for _, want := range []string{"[SDOP-INFO] ", "hello", "[SDOP-WARN] ", "saved 42 bytes", "[SDOP-ERROR] ", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestEventFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf)
	l.Event("POOP_SPAWNED", "00000000000000ff", "slot 0")

	if !strings.Contains(buf.String(), "[EVENT:POOP_SPAWNED] Actor:00000000000000ff | slot 0") {
		t.Errorf("unexpected event line %q", buf.String())
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	Discard().Info("ignored")
}
