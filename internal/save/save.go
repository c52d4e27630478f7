// Package save converts the persisted part of a GameContext to and from a
// fixed-size binary image.
package save

import (
	"github.com/MRamiBalles/sdop/internal/domain/alarm"
	"github.com/MRamiBalles/sdop/internal/domain/economy"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
	"github.com/MRamiBalles/sdop/internal/domain/suiter"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/sim"
)

// SaveFile is a value snapshot of everything that survives a restart.
type SaveFile struct {
	LastSaved    timestamp.Timestamp `json:"last_saved"`
	Pet          pet.Instance        `json:"pet"`
	Money        economy.Money       `json:"money"`
	UnlockedFood item.UnlockedFood   `json:"unlocked_food"`
	Inventory    item.Inventory      `json:"inventory"`
	Shop         economy.Shop        `json:"shop"`
	Poops        poop.Set            `json:"poops"`
	PetHistory   pet.History         `json:"pet_history"`
	Suiters      suiter.System       `json:"suiters"`
	Egg          *pet.Egg            `json:"egg,omitempty"`
	Alarm        alarm.Config        `json:"alarm"`
}

// Generate snapshots ctx. The result shares no mutable memory with ctx.
func Generate(ts timestamp.Timestamp, ctx *sim.GameContext) SaveFile {
	return SaveFile{
		LastSaved:    ts,
		Pet:          clonePet(ctx.Pet),
		Money:        ctx.Money,
		UnlockedFood: ctx.UnlockedFood,
		Inventory:    ctx.Inventory,
		Shop:         ctx.Shop,
		Poops:        ctx.Poops,
		PetHistory:   ctx.PetHistory,
		Suiters:      cloneSuiters(ctx.Suiters),
		Egg:          cloneEgg(ctx.Egg),
		Alarm:        ctx.Alarm.Config,
	}
}

// Load copies the snapshot into ctx. Runtime-only fields are left alone,
// except the alarm which restarts from its config.
func (s SaveFile) Load(ctx *sim.GameContext) {
	ctx.Pet = clonePet(s.Pet)
	ctx.Money = s.Money
	ctx.UnlockedFood = s.UnlockedFood
	ctx.Inventory = s.Inventory
	ctx.Shop = s.Shop
	ctx.Poops = s.Poops
	ctx.PetHistory = s.PetHistory
	ctx.Suiters = cloneSuiters(s.Suiters)
	ctx.Egg = cloneEgg(s.Egg)
	ctx.Alarm = alarm.NewState(s.Alarm)
}

func clonePet(p pet.Instance) pet.Instance {
	if p.Parents != nil {
		parents := *p.Parents
		p.Parents = &parents
	}
	if p.Death != nil {
		death := *p.Death
		p.Death = &death
	}
	return p
}

func cloneSuiters(s suiter.System) suiter.System {
	if s.Suiter != nil {
		sr := *s.Suiter
		s.Suiter = &sr
	}
	return s
}

func cloneEgg(e *pet.Egg) *pet.Egg {
	if e == nil {
		return nil
	}
	egg := *e
	return &egg
}
