package sim

// MetabolismSystem ages the pet and runs its hunger, poop and boredom timers.
type MetabolismSystem struct {
	ctx *GameContext
}

func NewMetabolismSystem(ctx *GameContext) *MetabolismSystem {
	return &MetabolismSystem{ctx: ctx}
}

func (ms *MetabolismSystem) OnAgeStep(step Step) {
	ms.ctx.Pet.TickAge(step.Delta)
}

// OnStep runs after the sleep lookup so every timer sees the current sleep state.
func (ms *MetabolismSystem) OnStep(step Step) {
	p := &ms.ctx.Pet
	p.TickHunger(step.Delta, step.Sleeping)
	p.TickPoop(step.Delta)
	p.TickSinceGame(step.Delta, step.Sleeping)
}
