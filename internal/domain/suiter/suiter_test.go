package suiter

import (
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

var noon = timestamp.MustParts(2025, 5, 10, 12, 0, 0)

func adult() *pet.Instance {
	p := pet.New(1, pet.DefCkcs, "Mum", noon, nil)
	p.Stomach = 10
	return &p
}

func TestSleepingClearsSuiterAndStops(t *testing.T) {
	src := rng.New(1)
	s := System{Suiter: &Suiter{Name: "Pip"}, WaitingForSuiter: time.Minute}
	out := s.SimTick(time.Second, src, adult(), true)
	if s.Present() || out != OutcomeLeft {
		t.Errorf("expected suiter to leave while asleep, got %v", out)
	}
	if s.WaitingForSuiter != time.Minute {
		t.Errorf("expected no waiting accrual while asleep, got %v", s.WaitingForSuiter)
	}
}

func TestSuiterLeavesWhenPetCannotBreed(t *testing.T) {
	src := rng.New(1)
	p := adult()
	p.Stomach = 0
	s := System{Suiter: &Suiter{Name: "Pip"}}
	s.SimTick(time.Second, src, p, false)
	if s.Present() {
		t.Errorf("expected suiter to leave a hungry pet")
	}
	if s.WaitingForSuiter != 0 {
		t.Errorf("expected no waiting for a pet that cannot breed")
	}
}

func TestPresentSuiterAccumulatesWait(t *testing.T) {
	src := rng.New(5)
	s := System{Suiter: &Suiter{Name: "Pip"}}
	p := adult()
	for i := 0; i < 10 && s.Present(); i++ {
		s.SimTick(time.Second, src, p, false)
	}
	if s.Present() && s.Suiter.Waiting != 10*time.Second {
		t.Errorf("expected 10s of waiting, got %v", s.Suiter.Waiting)
	}
}

func TestBabyNeverAttractsSuiter(t *testing.T) {
	src := rng.New(2)
	baby := pet.New(1, pet.DefBlob, "Tiny", noon, nil)
	var s System
	for i := 0; i < 10000; i++ {
		s.SimTick(time.Minute, src, &baby, false)
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle system for a baby, got %v", s.State())
	}
}

func TestSuiterEventuallyArrives(t *testing.T) {
	src := rng.New(4)
	p := adult()
	var s System
	arrived := false
	for i := 0; i < 7*24*3600 && !arrived; i++ {
		arrived = s.SimTick(time.Second, src, p, false) == OutcomeArrived
	}
	if !arrived || s.State() != StatePresent {
		t.Fatalf("expected a suiter within a week of waiting")
	}
	if !isAdult(s.Suiter.DefID) {
		t.Errorf("expected adult suiter, got %d", s.Suiter.DefID)
	}
	if s.WaitingForSuiter != 0 {
		t.Errorf("expected waiting counter reset on arrival")
	}
}

func isAdult(id pet.DefID) bool {
	for _, a := range pet.Adults {
		if a == id {
			return true
		}
	}
	return false
}
