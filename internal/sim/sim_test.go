package sim

import (
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
)

var t0 = timestamp.MustParts(2025, 6, 15, 12, 0, 0)

func overduePet(ctx *GameContext) {
	ctx.Pet.SincePoop = 10 * ctx.Pet.Definition().PoopInterval
}

func TestBlankContextPoopsOnFirstEvaluation(t *testing.T) {
	ctx := NewGameContext(t0)
	overduePet(ctx)

	if runs := TickSim(1, StepLength, t0, ctx); runs != 1 {
		t.Fatalf("expected one step, got %d", runs)
	}
	if ctx.Poops.Count() != 1 {
		t.Fatalf("expected 1 poop, got %d", ctx.Poops.Count())
	}
	p, ok := ctx.Poops.Get(0)
	if !ok || p.Spawned != t0 {
		t.Errorf("expected poop at %s, got %+v", t0, p)
	}
	if ctx.Pet.SincePoop != 0 {
		t.Errorf("expected poop timer reset")
	}
	if len(ctx.Events.GetByType(events.EventTypePoopSpawned)) != 1 {
		t.Errorf("expected a POOP_SPAWNED event")
	}
}

func TestFullPoopSetDropsSilently(t *testing.T) {
	ctx := NewGameContext(t0)
	for i := 0; i < poop.MaxPoops; i++ {
		ctx.Poops.Add(t0.Add(-time.Duration(i+1) * time.Minute))
	}
	before := ctx.Poops
	overduePet(ctx)

	TickSim(1, StepLength, t0, ctx)
	if ctx.Poops != before {
		t.Errorf("expected poop set unchanged when full")
	}
}

func TestLeftoverCarriesBetweenTicks(t *testing.T) {
	ctx := NewGameContext(t0)
	if runs := TickSim(1, 600*time.Millisecond, t0, ctx); runs != 0 {
		t.Fatalf("expected no step for 600ms, got %d", runs)
	}
	if runs := TickSim(1, 600*time.Millisecond, t0, ctx); runs != 1 {
		t.Fatalf("expected carry to complete a step, got %d", runs)
	}
	if ctx.SimExtra != 200*time.Millisecond {
		t.Errorf("expected 200ms left over, got %v", ctx.SimExtra)
	}
	if ctx.Pet.Age != StepLength {
		t.Errorf("expected age of one step, got %v", ctx.Pet.Age)
	}
}

func TestTimeScaleMultipliesSteps(t *testing.T) {
	ctx := NewGameContext(t0)
	if runs := TickSim(60, time.Second, t0, ctx); runs != 60 {
		t.Errorf("expected 60 steps, got %d", runs)
	}
	if runs := TickSim(0, time.Hour, t0, ctx); runs != 0 {
		t.Errorf("expected frozen time at scale 0, got %d", runs)
	}
}

func TestAgeMonotonic(t *testing.T) {
	ctx := NewGameContext(t0)
	prev := ctx.Pet.Age
	for i := 0; i < 50; i++ {
		TickSim(1, 1500*time.Millisecond, t0.Add(time.Duration(i)*time.Second), ctx)
		if ctx.Pet.Dead() {
			break
		}
		if ctx.Pet.Age < prev {
			t.Fatalf("age decreased: %v < %v", ctx.Pet.Age, prev)
		}
		prev = ctx.Pet.Age
	}
}

func TestSleepGatesHungerAndBoredom(t *testing.T) {
	night := timestamp.MustParts(2025, 6, 15, 23, 0, 0)
	awake := NewGameContext(t0)
	asleep := NewGameContext(t0)
	asleep.Pet = awake.Pet

	TickSim(1, time.Minute, t0, awake)
	TickSim(1, time.Minute, night, asleep)

	if asleep.Pet.SinceGame != 0 {
		t.Errorf("expected boredom paused while asleep, got %v", asleep.Pet.SinceGame)
	}
	if asleep.Pet.Stomach <= awake.Pet.Stomach {
		t.Errorf("expected slower hunger while asleep")
	}
}

func TestDeadPetIsFrozen(t *testing.T) {
	ctx := NewGameContext(t0)
	ctx.Pet.Death = &pet.Death{Cause: pet.DeathOldAge, At: t0}
	age := ctx.Pet.Age
	overduePet(ctx)
	TickSim(1, time.Hour, t0, ctx)
	if ctx.Pet.Age != age || ctx.Poops.Count() != 0 {
		t.Errorf("expected no simulation for a dead pet")
	}
}

func TestEggIncubatesEvenAfterDeath(t *testing.T) {
	ctx := NewGameContext(t0)
	egg := pet.NewEgg(ctx.Rng, &ctx.Pet, 9, t0)
	ctx.Egg = &egg
	ctx.Pet.Death = &pet.Death{Cause: pet.DeathOldAge, At: t0}
	TickSim(1, pet.IncubationTime, t0, ctx)
	if !ctx.Egg.Ready() {
		t.Errorf("expected egg ready")
	}
}

func TestSameSeedSameOutcome(t *testing.T) {
	a := NewGameContext(t0)
	b := NewGameContext(t0)
	for i := 0; i < 20; i++ {
		now := t0.Add(time.Duration(i) * time.Hour)
		TickSim(3600, time.Second, now, a)
		TickSim(3600, time.Second, now, b)
	}
	if a.Pet.Stomach != b.Pet.Stomach || a.Poops != b.Poops || a.Pet.Dead() != b.Pet.Dead() {
		t.Errorf("expected identical runs from the same seed")
	}
}

func TestAdultAttractsSuiterAndAcceptLaysEgg(t *testing.T) {
	ctx := NewGameContext(t0)
	ctx.Pet = pet.New(42, pet.DefCkcs, "Mum", t0, nil)
	ctx.Pet.Stomach = 30

	for i := 0; i < 48 && !ctx.Suiters.Present(); i++ {
		ctx.Pet.Stomach = 30
		ctx.Pet.Starving = 0
		ctx.Pet.Age = 0
		ctx.Poops.Clear()
		TickSim(1800, time.Second, t0, ctx)
	}
	if !ctx.Suiters.Present() {
		t.Fatalf("expected a suiter after a day of waiting")
	}
	if len(ctx.Events.GetByType(events.EventTypeSuiterArrived)) == 0 {
		t.Errorf("expected SUITER_ARRIVED event")
	}
	if !ctx.AcceptSuiter(t0) {
		t.Fatalf("expected accept to succeed")
	}
	if ctx.Egg == nil || ctx.Egg.Parents.A != 42 || ctx.Suiters.Present() {
		t.Errorf("expected egg laid and suiter cleared, got egg=%+v", ctx.Egg)
	}
	if ctx.AcceptSuiter(t0) {
		t.Errorf("expected second accept to fail without a suiter")
	}
}

func TestReplacePetFilesRecordAndHatches(t *testing.T) {
	ctx := NewGameContext(t0)
	egg := pet.NewEgg(ctx.Rng, &ctx.Pet, 7, t0)
	egg.Incubated = pet.IncubationTime
	ctx.Egg = &egg
	oldID := ctx.Pet.UPID
	ctx.Pet.Death = &pet.Death{Cause: pet.DeathStarvation, At: t0}
	ctx.Poops.Add(t0)

	ctx.ReplacePet(t0.Add(time.Hour))

	if ctx.PetHistory.Len != 1 || ctx.PetHistory.Records[0].UPID != oldID {
		t.Errorf("expected dead pet on record")
	}
	if ctx.PetHistory.Records[0].Cause != pet.DeathStarvation {
		t.Errorf("expected cause carried into record")
	}
	if ctx.Pet.UPID != egg.UPID || ctx.Egg != nil || ctx.Poops.Count() != 0 {
		t.Errorf("expected hatched pet and clean slate")
	}
}

func TestReplacePetDiscardsUnreadyEgg(t *testing.T) {
	ctx := NewGameContext(t0)
	egg := pet.NewEgg(ctx.Rng, &ctx.Pet, 7, t0)
	ctx.Egg = &egg
	ctx.Pet.Death = &pet.Death{Cause: pet.DeathToxicShock, At: t0}

	ctx.ReplacePet(t0.Add(time.Second))

	if ctx.Pet.UPID == egg.UPID || ctx.Pet.Parents != nil {
		t.Errorf("expected a random baby, got %+v", ctx.Pet)
	}
	if ctx.Egg != nil {
		t.Error("expected the unready egg to be lost")
	}
	if len(ctx.Events.GetByType(events.EventTypeEggHatched)) != 0 {
		t.Error("expected no EGG_HATCHED event")
	}
}

func TestHatchEggRetiresLivingParent(t *testing.T) {
	ctx := NewGameContext(t0)
	parent := ctx.Pet.UPID
	egg := pet.NewEgg(ctx.Rng, &ctx.Pet, 7, t0)
	ctx.Egg = &egg

	if ctx.HatchEgg(t0) {
		t.Fatal("expected a fresh egg to refuse to hatch")
	}
	ctx.Egg.SimTick(pet.IncubationTime)
	if !ctx.HatchEgg(t0.Add(time.Hour)) {
		t.Fatal("expected a ready egg to hatch")
	}

	if ctx.Pet.UPID != egg.UPID || ctx.Pet.Parents == nil || ctx.Pet.Parents.A != parent {
		t.Errorf("expected baby with lineage, got %+v", ctx.Pet)
	}
	if ctx.PetHistory.Len != 1 {
		t.Fatalf("expected parent on record, got %d", ctx.PetHistory.Len)
	}
	rec := ctx.PetHistory.Records[0]
	if rec.UPID != parent || rec.Cause != pet.DeathLeaving || rec.Died != t0.Add(time.Hour) {
		t.Errorf("unexpected record %+v", rec)
	}
	if ctx.Egg != nil {
		t.Error("expected egg consumed")
	}
}
