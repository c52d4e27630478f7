package rng

import (
	"testing"
	"time"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.U64() != b.U64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestRanges(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		if f := r.F32(); f < 0 || f >= 1 {
			t.Fatalf("F32 out of range: %f", f)
		}
		if n := r.IntRange(3, 5); n < 3 || n > 5 {
			t.Fatalf("IntRange out of range: %d", n)
		}
		if d := r.DurationRange(time.Second, 10*time.Second); d < time.Second || d >= 10*time.Second {
			t.Fatalf("DurationRange out of range: %v", d)
		}
	}
	if r.IntN(0) != 0 {
		t.Errorf("IntN(0) should be 0")
	}
}
