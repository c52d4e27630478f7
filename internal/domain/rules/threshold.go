// Package rules contains the pure probability tables behind the simulation.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import (
	"cmp"
	"math"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/rng"
)

// Threshold maps every value below Value to Odds.
type Threshold[T cmp.Ordered] struct {
	Value T
	Odds  float32
}

// Odds returns the odds of the first entry whose Value is above v,
// or the last entry's odds when v is past every entry.
func Odds[T cmp.Ordered](table []Threshold[T], v T) float32 {
	if len(table) == 0 {
		return 0
	}
	for _, th := range table {
		if v < th.Value {
			return th.Odds
		}
	}
	return table[len(table)-1].Odds
}

// Passed draws once against the odds for v.
func Passed[T cmp.Ordered](src *rng.Rng, table []Threshold[T], v T) bool {
	return src.F32() < Odds(table, v)
}

const forever = time.Duration(math.MaxInt64)

// SuiterShowUpOdds is indexed by time spent waiting for a suiter.
var SuiterShowUpOdds = []Threshold[time.Duration]{
	{Value: 10 * time.Minute, Odds: 0},
	{Value: 30 * time.Minute, Odds: 0.0005},
	{Value: 2 * time.Hour, Odds: 0.002},
	{Value: 6 * time.Hour, Odds: 0.01},
	{Value: forever, Odds: 0.05},
}

// SuiterLeaveOdds is the per-step chance a present suiter gives up.
const SuiterLeaveOdds float32 = 0.0002

// PoopOdds is indexed by time since the last poop over the species poop interval.
var PoopOdds = []Threshold[float32]{
	{Value: 0.75, Odds: 0},
	{Value: 1.0, Odds: 0.0005},
	{Value: 1.5, Odds: 0.005},
	{Value: math.MaxFloat32, Odds: 1},
}

// SleepingPoopFactor scales PoopOdds while the pet sleeps.
const SleepingPoopFactor float32 = 0.25

// StarvationOdds is indexed by time spent with an empty stomach.
var StarvationOdds = []Threshold[time.Duration]{
	{Value: 6 * time.Hour, Odds: 0},
	{Value: 12 * time.Hour, Odds: 0.01},
	{Value: forever, Odds: 0.1},
}

// OldAgeOdds is indexed by age over the species lifespan.
var OldAgeOdds = []Threshold[float32]{
	{Value: 1.0, Odds: 0},
	{Value: 1.2, Odds: 0.01},
	{Value: math.MaxFloat32, Odds: 0.2},
}

// ToxicShockOdds is indexed by the number of poops on screen.
var ToxicShockOdds = []Threshold[int]{
	{Value: 4, Odds: 0},
	{Value: 5, Odds: 0.0005},
	{Value: math.MaxInt, Odds: 0.002},
}

// LightningStrikeOdds applies on every death check regardless of state.
const LightningStrikeOdds float32 = 0.0000001

// DeathCheckInterval is how much sim time passes between death rolls.
const DeathCheckInterval = 5 * time.Second
