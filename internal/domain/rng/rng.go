// Package rng provides the seeded pseudo-random source threaded through the simulation.
// This package is PURE and must NOT import any infrastructure packages.
package rng

import (
	"math/rand/v2"
	"time"
)

// Rng is a deterministic generator. The same seed always yields the same sequence.
type Rng struct {
	seed uint64
	src  *rand.Rand
}

// New creates a generator seeded with seed.
func New(seed uint64) *Rng {
	return &Rng{
		seed: seed,
		src:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the value the generator was created with.
func (r *Rng) Seed() uint64 {
	return r.seed
}

// F32 returns a float in [0, 1).
func (r *Rng) F32() float32 {
	return r.src.Float32()
}

// U64 returns a uniformly distributed uint64.
func (r *Rng) U64() uint64 {
	return r.src.Uint64()
}

// IntN returns an int in [0, n). n <= 0 yields 0.
func (r *Rng) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.IntN(n)
}

// IntRange returns an int in [lo, hi].
func (r *Rng) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.IntN(hi-lo+1)
}

// Bool returns true half of the time.
func (r *Rng) Bool() bool {
	return r.src.Uint64()&1 == 1
}

// DurationRange returns a duration in [lo, hi).
func (r *Rng) DurationRange(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.src.Int64N(int64(hi-lo)))
}

// Choice returns a random element of items. It panics on an empty slice.
func Choice[T any](r *Rng, items []T) T {
	return items[r.IntN(len(items))]
}
