package sim

import (
	"math"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// StepLength is the fixed slice of sim time every step covers.
const StepLength = time.Second

// Step is one fixed slice of simulated time.
type Step struct {
	Delta    time.Duration
	Now      timestamp.Timestamp
	Sleeping bool
}

// Scale multiplies delta by timeScale. Non-positive or NaN scales freeze time.
func Scale(delta time.Duration, timeScale float32) time.Duration {
	if timeScale <= 0 || math.IsNaN(float64(timeScale)) || delta <= 0 {
		return 0
	}
	scaled := float64(delta) * float64(timeScale)
	if scaled > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(scaled)
}

// steps converts a scaled delta into whole steps, carrying the remainder.
func (c *GameContext) steps(scaled time.Duration) int64 {
	runs := int64(scaled / StepLength)
	c.SimExtra += scaled % StepLength
	for c.SimExtra >= StepLength {
		c.SimExtra -= StepLength
		runs++
	}
	return runs
}

// TickSim advances ctx by delta*timeScale in fixed steps and returns the
// number of steps taken. Every step sees now as the current time.
func TickSim(timeScale float32, delta time.Duration, now timestamp.Timestamp, ctx *GameContext) int64 {
	runs := ctx.steps(Scale(delta, timeScale))

	metabolism := NewMetabolismSystem(ctx)
	lifecycle := NewLifecycleSystem(ctx)
	poops := NewPoopSystem(ctx)
	breeding := NewBreedingSystem(ctx)

	for i := int64(0); i < runs; i++ {
		step := Step{Delta: StepLength, Now: now}

		breeding.OnEggStep(step)
		if ctx.Pet.Dead() {
			continue
		}

		metabolism.OnAgeStep(step)
		step.Sleeping = ctx.Pet.Definition().ShouldBeSleeping(now)
		metabolism.OnStep(step)
		lifecycle.OnStep(step)
		poops.OnStep(step)
		breeding.OnStep(step)
	}
	return runs
}
