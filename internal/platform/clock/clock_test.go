package clock

import (
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

func TestFakeAdvance(t *testing.T) {
	start := timestamp.MustParts(2025, 1, 1, 0, 0, 0)
	c := NewFake(start)
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Errorf("expected 90s, got %s", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Error("expected Set to rewind")
	}
}

func TestRealIsWallClock(t *testing.T) {
	var c Clock = Real{}
	if c.Now().Year() < 2024 {
		t.Errorf("unexpected year %d", c.Now().Year())
	}
}
