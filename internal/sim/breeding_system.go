package sim

import (
	"github.com/MRamiBalles/sdop/internal/domain/suiter"
	"github.com/MRamiBalles/sdop/internal/events"
)

// BreedingSystem incubates the egg and drives the suiter state machine.
type BreedingSystem struct {
	ctx *GameContext
}

func NewBreedingSystem(ctx *GameContext) *BreedingSystem {
	return &BreedingSystem{ctx: ctx}
}

func (bs *BreedingSystem) OnEggStep(step Step) {
	if bs.ctx.Egg != nil {
		bs.ctx.Egg.SimTick(step.Delta)
	}
}

func (bs *BreedingSystem) OnStep(step Step) {
	c := bs.ctx
	if c.Pet.Dead() {
		return
	}
	var name, id string
	if s := c.Suiters.Suiter; s != nil {
		name, id = s.Name, ActorID(s.UPID)
	}

	switch c.Suiters.SimTick(step.Delta, c.Rng, &c.Pet, step.Sleeping) {
	case suiter.OutcomeArrived:
		s := c.Suiters.Suiter
		c.Emit(step.Now, events.EventTypeSuiterArrived, ActorID(s.UPID), map[string]string{"name": s.Name})
	case suiter.OutcomeLeft:
		c.Emit(step.Now, events.EventTypeSuiterLeft, id, map[string]string{"name": name})
	}
}
