package sim

import (
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/events"
)

// LifecycleSystem rolls for death and flags evolutions.
type LifecycleSystem struct {
	ctx *GameContext
}

func NewLifecycleSystem(ctx *GameContext) *LifecycleSystem {
	return &LifecycleSystem{ctx: ctx}
}

func (ls *LifecycleSystem) OnStep(step Step) {
	c := ls.ctx
	p := &c.Pet

	p.TickDeath(step.Delta, c.Rng, step.Now, c.Poops.Count())
	if p.Dead() {
		c.Emit(step.Now, events.EventTypePetDied, "", map[string]string{"cause": p.Death.Cause.String()})
		c.Sounds.Push(sound.SongDeath)
		return
	}

	wasPending := p.EvolvePending
	p.TickEvolve()
	if p.EvolvePending && !wasPending {
		c.Emit(step.Now, events.EventTypeEvolveReady, "", map[string]string{"to": pet.Get(p.EvolveTo).Name})
	}
}
