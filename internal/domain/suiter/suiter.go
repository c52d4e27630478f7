// Package suiter models breeding partners that show up and leave over time.
// This package is PURE and must NOT import any infrastructure packages.
package suiter

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/rules"
)

// Suiter is a candidate partner.
type Suiter struct {
	DefID   pet.DefID     `json:"def_id"`
	UPID    pet.UPID      `json:"upid"`
	Name    string        `json:"name"`
	Waiting time.Duration `json:"waiting"`
}

// NewRandom draws an adult suiter.
func NewRandom(src *rng.Rng) Suiter {
	return Suiter{
		DefID: rng.Choice(src, pet.Adults),
		UPID:  pet.GenUPID(src),
		Name:  pet.RandomName(src),
	}
}

// State is the conceptual state of a System.
type State uint8

const (
	StateIdle State = iota
	StateWaiting
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWaiting:
		return "WAITING"
	case StatePresent:
		return "PRESENT"
	}
	return "UNKNOWN"
}

// System tracks the current suiter and how long the pet has waited for one.
type System struct {
	Suiter           *Suiter       `json:"suiter,omitempty"`
	WaitingForSuiter time.Duration `json:"waiting_for_suiter"`
}

func (s *System) State() State {
	switch {
	case s.Suiter != nil:
		return StatePresent
	case s.WaitingForSuiter > 0:
		return StateWaiting
	}
	return StateIdle
}

func (s *System) Present() bool { return s.Suiter != nil }

func (s *System) Clear() {
	s.Suiter = nil
}

// Outcome reports what a SimTick changed.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeArrived
	OutcomeLeft
)

// SimTick advances the system by one step.
func (s *System) SimTick(delta time.Duration, src *rng.Rng, p *pet.Instance, sleeping bool) Outcome {
	if s.Suiter != nil {
		s.Suiter.Waiting += delta
	}

	out := OutcomeNone
	if sleeping || (s.Suiter != nil && (!p.ShouldBreed() || src.F32() < rules.SuiterLeaveOdds)) {
		if s.Suiter != nil {
			out = OutcomeLeft
		}
		s.Suiter = nil
	}

	if sleeping {
		return out
	}

	if p.ShouldBreed() && s.Suiter == nil {
		s.WaitingForSuiter += delta
		if rules.Passed(src, rules.SuiterShowUpOdds, s.WaitingForSuiter) {
			next := NewRandom(src)
			s.Suiter = &next
			s.WaitingForSuiter = 0
			return OutcomeArrived
		}
	}
	return out
}
