package sim

import (
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/events"
)

// PoopSystem runs the poop gate once per step.
type PoopSystem struct {
	ctx *GameContext
}

func NewPoopSystem(ctx *GameContext) *PoopSystem {
	return &PoopSystem{ctx: ctx}
}

// OnStep drops the poop silently when every slot is taken.
func (ps *PoopSystem) OnStep(step Step) {
	c := ps.ctx
	if c.Pet.Dead() || !c.Pet.ShouldPoop(c.Rng, step.Sleeping) {
		return
	}
	c.Pet.SincePoop = 0
	if c.Poops.Add(step.Now) {
		c.Emit(step.Now, events.EventTypePoopSpawned, "", map[string]int{"count": c.Poops.Count()})
		c.Sounds.Push(sound.SongPooped)
	}
}
