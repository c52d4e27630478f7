// Package poop holds the bounded poop set and its storage-free placement.
// This package is PURE and must NOT import any infrastructure packages.
package poop

import (
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// MaxPoops is the capacity of a Set.
const MaxPoops = 5

// SpriteSize is the larger extent of the poop sprite in pixels.
const SpriteSize = 11

// WonderRect is the area the pet and its poops roam in.
var WonderRect = geo.Rect{
	Center: geo.Vec2{X: geo.Width / 2, Y: geo.Height / 2},
	Size:   geo.Vec2{X: geo.Width, Y: 90},
}

type Poop struct {
	Spawned timestamp.Timestamp `json:"spawned"`
}

// Slot is one optional entry of a Set.
type Slot struct {
	Poop   Poop `json:"poop"`
	Filled bool `json:"filled"`
}

// Set is a fixed array of optional poops filled first-fit.
type Set [MaxPoops]Slot

// Add fills the first empty slot. A full set drops the poop.
func (s *Set) Add(ts timestamp.Timestamp) bool {
	for i := range s {
		if !s[i].Filled {
			s[i] = Slot{Poop: Poop{Spawned: ts}, Filled: true}
			return true
		}
	}
	return false
}

func (s *Set) Count() int {
	n := 0
	for _, slot := range s {
		if slot.Filled {
			n++
		}
	}
	return n
}

// Get returns the poop at index i, if that slot is filled.
func (s *Set) Get(i int) (Poop, bool) {
	if i < 0 || i >= MaxPoops || !s[i].Filled {
		return Poop{}, false
	}
	return s[i].Poop, true
}

func (s *Set) Clear() {
	*s = Set{}
}

// RenderPos places p inside WonderRect using only its spawn time, so the
// position survives reloads without being stored.
func RenderPos(p Poop) geo.Vec2 {
	src := rng.New(p.Spawned.Seed())
	return WonderRect.Shrink(SpriteSize).RandomPointInside(src)
}
