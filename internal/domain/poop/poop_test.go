package poop

import (
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

var t0 = timestamp.MustParts(2025, 2, 1, 10, 0, 0)

func TestAddFirstFit(t *testing.T) {
	var s Set
	s.Add(t0)
	s.Add(t0.Add(time.Second))
	s[0] = Slot{}

	s.Add(t0.Add(2 * time.Second))
	p, ok := s.Get(0)
	if !ok || p.Spawned != t0.Add(2*time.Second) {
		t.Errorf("expected refill of slot 0, got %+v", s[0])
	}
	if s.Count() != 2 {
		t.Errorf("expected 2 poops, got %d", s.Count())
	}
}

func TestAddFullIsNoop(t *testing.T) {
	var s Set
	for i := 0; i < MaxPoops; i++ {
		if !s.Add(t0.Add(time.Duration(i) * time.Second)) {
			t.Fatalf("expected slot %d to accept", i)
		}
	}
	before := s
	if s.Add(t0.Add(time.Hour)) {
		t.Errorf("expected sixth poop to be dropped")
	}
	if s != before || s.Count() != MaxPoops {
		t.Errorf("expected set unchanged after overflow")
	}
}

func TestGetOutOfRange(t *testing.T) {
	var s Set
	if _, ok := s.Get(-1); ok {
		t.Errorf("expected miss for -1")
	}
	if _, ok := s.Get(MaxPoops); ok {
		t.Errorf("expected miss past capacity")
	}
}

func TestRenderPosDeterministicAndInside(t *testing.T) {
	a := Poop{Spawned: t0}
	b := Poop{Spawned: t0.Add(time.Millisecond)}

	if RenderPos(a) != RenderPos(a) {
		t.Errorf("expected same position for the same poop")
	}
	if RenderPos(a) == RenderPos(b) {
		t.Errorf("expected different positions for different spawn times")
	}

	inner := WonderRect.Shrink(SpriteSize)
	for i := 0; i < 200; i++ {
		p := Poop{Spawned: t0.Add(time.Duration(i) * time.Minute)}
		if pos := RenderPos(p); !inner.Contains(pos) {
			t.Fatalf("position %+v outside %+v", pos, inner)
		}
	}
}
