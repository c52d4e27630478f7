// Package pet defines the pet species table, the live pet instance and its history.
// This package is PURE and must NOT import any infrastructure packages.
package pet

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// DefID identifies a species.
type DefID uint16

const (
	DefBlob DefID = iota
	DefEgglet
	DefPawn
	DefSprout
	DefCkcs
	DefBishop
	DefFern
)

// LifeStage is a discrete maturity phase.
type LifeStage uint8

const (
	StageBaby LifeStage = iota
	StageChild
	StageAdult
)

func (s LifeStage) String() string {
	switch s {
	case StageBaby:
		return "BABY"
	case StageChild:
		return "CHILD"
	case StageAdult:
		return "ADULT"
	}
	return "UNKNOWN"
}

// Evolution is one candidate next species. MaxExtraWeight of 0 means no limit.
type Evolution struct {
	To             DefID
	MinAge         time.Duration
	MaxExtraWeight float32
}

// Definition provides the fixed properties of a species.
type Definition struct {
	ID           DefID
	Name         string
	Stage        LifeStage
	StomachSize  float32
	BaseWeight   float32 // grams
	Lifespan     time.Duration
	Bedtime      int // hour the pet falls asleep
	WakeTime     int // hour the pet wakes up
	PoopInterval time.Duration
	Evolves      []Evolution
}

const day = 24 * time.Hour

// Registry contains every species, indexed by DefID.
var Registry = []Definition{
	DefBlob: {
		ID: DefBlob, Name: "Blob", Stage: StageBaby,
		StomachSize: 10, BaseWeight: 20,
		Bedtime: 20, WakeTime: 8, PoopInterval: 45 * time.Minute,
		Evolves: []Evolution{{To: DefPawn, MinAge: 2 * time.Hour}},
	},
	DefEgglet: {
		ID: DefEgglet, Name: "Egglet", Stage: StageBaby,
		StomachSize: 8, BaseWeight: 15,
		Bedtime: 21, WakeTime: 7, PoopInterval: 40 * time.Minute,
		Evolves: []Evolution{{To: DefSprout, MinAge: 2 * time.Hour}},
	},
	DefPawn: {
		ID: DefPawn, Name: "Pawn", Stage: StageChild,
		StomachSize: 20, BaseWeight: 60,
		Bedtime: 21, WakeTime: 7, PoopInterval: time.Hour,
		Evolves: []Evolution{
			{To: DefCkcs, MinAge: day, MaxExtraWeight: 50},
			{To: DefBishop, MinAge: day},
		},
	},
	DefSprout: {
		ID: DefSprout, Name: "Sprout", Stage: StageChild,
		StomachSize: 16, BaseWeight: 45,
		Bedtime: 22, WakeTime: 6, PoopInterval: time.Hour,
		Evolves: []Evolution{{To: DefFern, MinAge: day}},
	},
	DefCkcs: {
		ID: DefCkcs, Name: "Ckcs", Stage: StageAdult,
		StomachSize: 30, BaseWeight: 120, Lifespan: 14 * day,
		Bedtime: 22, WakeTime: 6, PoopInterval: 90 * time.Minute,
	},
	DefBishop: {
		ID: DefBishop, Name: "Bishop", Stage: StageAdult,
		StomachSize: 35, BaseWeight: 160, Lifespan: 12 * day,
		Bedtime: 23, WakeTime: 7, PoopInterval: 80 * time.Minute,
	},
	DefFern: {
		ID: DefFern, Name: "Fern", Stage: StageAdult,
		StomachSize: 25, BaseWeight: 90, Lifespan: 16 * day,
		Bedtime: 21, WakeTime: 5, PoopInterval: 2 * time.Hour,
	},
}

// Adults and Babies are the pools suiters and new pets are drawn from.
var (
	Adults = []DefID{DefCkcs, DefBishop, DefFern}
	Babies = []DefID{DefBlob, DefEgglet}
)

// Known reports whether id names a species.
func Known(id DefID) bool {
	return int(id) < len(Registry)
}

// Get returns the definition for id, falling back to the first species.
func Get(id DefID) *Definition {
	if !Known(id) {
		return &Registry[0]
	}
	return &Registry[id]
}

// ShouldBeSleeping reports whether the species sleeps at ts.
func (d *Definition) ShouldBeSleeping(ts timestamp.Timestamp) bool {
	h := ts.Hour()
	if d.Bedtime > d.WakeTime {
		return h >= d.Bedtime || h < d.WakeTime
	}
	return h >= d.Bedtime && h < d.WakeTime
}

// NextStage returns the first evolution the pet currently satisfies.
func (d *Definition) NextStage(age time.Duration, extraWeight float32) (DefID, bool) {
	for _, evo := range d.Evolves {
		if age < evo.MinAge {
			continue
		}
		if evo.MaxExtraWeight > 0 && extraWeight > evo.MaxExtraWeight {
			continue
		}
		return evo.To, true
	}
	return 0, false
}

// BabyFor picks the baby species that hatches from an egg of the given parent species.
func BabyFor(parent DefID) DefID {
	if parent == DefFern {
		return DefEgglet
	}
	return DefBlob
}
