package sim

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/alarm"
	"github.com/MRamiBalles/sdop/internal/domain/economy"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/domain/suiter"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
)

// StartingMoney is the balance of a new game.
const StartingMoney economy.Money = 50

// GameContext is the mutable world state.
type GameContext struct {
	Pet          pet.Instance
	Money        economy.Money
	UnlockedFood item.UnlockedFood
	Inventory    item.Inventory
	Shop         economy.Shop
	Poops        poop.Set
	PetHistory   pet.History
	Suiters      suiter.System
	Egg          *pet.Egg
	Alarm        alarm.State

	// Runtime only. None of these are persisted.
	Rng        *rng.Rng
	SimExtra   time.Duration
	ShouldSave bool
	Sounds     sound.Queue
	Events     *events.EventLog
}

// NewGameContext creates a blank world with a random baby born at ts.
func NewGameContext(ts timestamp.Timestamp) *GameContext {
	src := rng.New(ts.Seed())
	return &GameContext{
		Pet:          pet.NewRandom(src, ts),
		Money:        StartingMoney,
		UnlockedFood: item.DefaultUnlockedFood,
		Shop:         economy.NewShop(),
		Rng:          src,
		Events:       events.NewEventLog(events.DefaultCapacity),
	}
}

// ActorID is the pet id as it appears in events.
func ActorID(id pet.UPID) string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Emit appends an event about the current pet.
func (c *GameContext) Emit(now timestamp.Timestamp, t events.EventType, target string, payload interface{}) {
	c.Events.Append(events.GameEvent{
		Timestamp: now,
		Type:      t,
		ActorID:   ActorID(c.Pet.UPID),
		TargetID:  target,
		Payload:   payload,
	})
}

// Feed gives the pet a meal if the food is unlocked.
func (c *GameContext) Feed(id item.FoodID, now timestamp.Timestamp) bool {
	if !c.UnlockedFood.Has(id) || c.Pet.Dead() {
		return false
	}
	food := item.GetFood(id)
	c.Pet.Feed(food.Fill, food.Weight)
	c.Emit(now, events.EventTypeFed, "", map[string]string{"food": food.Name})
	return true
}

// ClearPoops empties the poop set.
func (c *GameContext) ClearPoops(now timestamp.Timestamp) {
	n := c.Poops.Count()
	c.Poops.Clear()
	if n > 0 {
		c.Emit(now, events.EventTypePoopCleared, "", map[string]int{"count": n})
	}
}

// AcceptSuiter lays an egg with the present suiter. It fails without a
// suiter or when an egg is already waiting.
func (c *GameContext) AcceptSuiter(now timestamp.Timestamp) bool {
	s := c.Suiters.Suiter
	if s == nil || c.Egg != nil {
		return false
	}
	egg := pet.NewEgg(c.Rng, &c.Pet, s.UPID, now)
	c.Egg = &egg
	c.Suiters.Clear()
	c.Emit(now, events.EventTypeSuiterAccepted, ActorID(s.UPID), map[string]string{"name": s.Name})
	c.Emit(now, events.EventTypeEggLaid, ActorID(egg.UPID), nil)
	return true
}

// ReplacePet files the dead pet into history and starts the next one. A
// ready egg hatches into it; an egg still incubating is lost with its parent.
func (c *GameContext) ReplacePet(now timestamp.Timestamp) {
	if c.Pet.Dead() {
		c.PetHistory.Push(c.Pet.Record())
	}
	if c.Egg != nil && c.Egg.Ready() {
		c.hatch(now)
	} else {
		c.Egg = nil
		c.Pet = pet.NewRandom(c.Rng, now)
	}
	c.freshStart(now)
}

// HatchEgg swaps a ready egg in for the current pet, which leaves and is
// filed into history. It reports false when no egg is ready.
func (c *GameContext) HatchEgg(now timestamp.Timestamp) bool {
	if c.Egg == nil || !c.Egg.Ready() {
		return false
	}
	if c.Pet.Dead() {
		c.PetHistory.Push(c.Pet.Record())
	} else {
		c.PetHistory.Push(c.Pet.Retire(now))
	}
	c.hatch(now)
	c.freshStart(now)
	return true
}

func (c *GameContext) hatch(now timestamp.Timestamp) {
	c.Pet = c.Egg.Hatch(c.Rng, now)
	c.Egg = nil
	c.Emit(now, events.EventTypeEggHatched, ActorID(c.Pet.UPID), nil)
	c.Sounds.Push(sound.SongHatch)
}

func (c *GameContext) freshStart(now timestamp.Timestamp) {
	c.Poops.Clear()
	c.Suiters = suiter.System{}
	c.Emit(now, events.EventTypePetBorn, "", map[string]string{"name": c.Pet.Name, "species": c.Pet.Definition().Name})
}

// Buy spends money on a shop item.
func (c *GameContext) Buy(id item.ID, now timestamp.Timestamp) bool {
	if !c.Money.Spend(economy.Price(id)) {
		return false
	}
	c.Inventory.Add(id, 1)
	def, _ := item.Get(id)
	c.Emit(now, events.EventTypeItemBought, "", map[string]string{"item": def.Name})
	return true
}
