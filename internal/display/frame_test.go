package display

import (
	"testing"
	"time"
)

func TestAnimeWraps(t *testing.T) {
	a := NewAnime(3, 100*time.Millisecond)
	a.Tick(250 * time.Millisecond)
	if a.Current() != 2 {
		t.Errorf("expected frame 2, got %d", a.Current())
	}
	a.Tick(100 * time.Millisecond)
	if a.Current() != 0 {
		t.Errorf("expected wrap to frame 0, got %d", a.Current())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	var f Frame
	f.Reset("HOME")
	f.Text(0, 0, "hi")
	c := f.Clone()
	f.Reset("OTHER")
	f.Text(0, 0, "bye")
	if c.Texts[0].Body != "hi" || c.Scene != "HOME" {
		t.Errorf("clone changed with original: %+v", c)
	}
}
