package pet

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// IncubationTime is how long an egg takes to be ready.
const IncubationTime = time.Hour

// Egg is laid when a suiter is accepted.
type Egg struct {
	UPID      UPID                `json:"upid"`
	DefID     DefID               `json:"def_id"`
	Parents   Parents             `json:"parents"`
	Laid      timestamp.Timestamp `json:"laid"`
	Incubated time.Duration       `json:"incubated"`
}

// NewEgg lays an egg whose species follows the parent.
func NewEgg(src *rng.Rng, parent *Instance, partner UPID, laid timestamp.Timestamp) Egg {
	return Egg{
		UPID:    GenUPID(src),
		DefID:   BabyFor(parent.DefID),
		Parents: Parents{A: parent.UPID, B: partner},
		Laid:    laid,
	}
}

func (e *Egg) SimTick(delta time.Duration) {
	if e.Incubated < IncubationTime {
		e.Incubated += delta
	}
}

func (e *Egg) Ready() bool {
	return e.Incubated >= IncubationTime
}

// Hatch turns the egg into a baby that keeps the egg's id and lineage.
func (e *Egg) Hatch(src *rng.Rng, at timestamp.Timestamp) Instance {
	parents := e.Parents
	return New(e.UPID, e.DefID, RandomName(src), at, &parents)
}
