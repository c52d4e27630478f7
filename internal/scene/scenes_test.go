package scene

import (
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/alarm"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/suiter"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/sim"
)

func TestHomeMenuOpensFoodAndFeeds(t *testing.T) {
	h := newHarness(NewHome())
	h.step(time.Millisecond)
	before := h.ctx.Pet.Stomach

	h.press(input.Middle)
	if h.mgr.Active() != KindFoodSelect {
		t.Fatalf("expected FOOD_SELECT, got %s", h.mgr.Active())
	}
	h.press(input.Middle)
	if h.mgr.Active() != KindEat {
		t.Fatalf("expected EAT, got %s", h.mgr.Active())
	}
	h.runFor(eatTime + 200*time.Millisecond)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected HOME after eating, got %s", h.mgr.Active())
	}
	if h.ctx.Pet.Stomach <= before {
		t.Errorf("expected stomach to grow from %v, got %v", before, h.ctx.Pet.Stomach)
	}
}

func TestHomeMenuWraps(t *testing.T) {
	h := newHarness(NewHome())
	h.step(time.Millisecond)
	h.press(input.Left)
	h.press(input.Middle)
	if h.mgr.Active() != KindCredits {
		t.Errorf("expected CREDITS after wrapping left, got %s", h.mgr.Active())
	}
}

func TestHomeRedirectsDeadPet(t *testing.T) {
	h := newHarness(NewHome())
	h.ctx.Pet.Death = &pet.Death{Cause: pet.DeathOldAge, At: noon}
	h.step(time.Millisecond)
	if h.mgr.Active() != KindDeath {
		t.Fatalf("expected DEATH, got %s", h.mgr.Active())
	}

	h.press(input.Middle)
	if h.mgr.Active() != KindDeath {
		t.Fatal("expected death scene to ignore presses at first")
	}
	h.runFor(deathMinShow)
	h.press(input.Middle)
	if h.mgr.Active() != KindNewPet {
		t.Fatalf("expected NEW_PET, got %s", h.mgr.Active())
	}
	if h.ctx.Pet.Dead() {
		t.Error("expected a live pet after the death scene")
	}
	if h.ctx.PetHistory.Len != 1 {
		t.Errorf("expected dead pet in history, got %d", h.ctx.PetHistory.Len)
	}
}

func TestHomeRedirectsPendingEvolution(t *testing.T) {
	h := newHarness(NewHome())
	h.ctx.Pet = pet.New(1, pet.DefBlob, "Pip", noon, nil)
	h.ctx.Pet.EvolvePending = true
	h.ctx.Pet.EvolveTo = pet.DefPawn
	h.step(time.Millisecond)
	if h.mgr.Active() != KindEvolve {
		t.Fatalf("expected EVOLVE, got %s", h.mgr.Active())
	}
	h.runFor(evolveTime + 200*time.Millisecond)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected HOME, got %s", h.mgr.Active())
	}
	if h.ctx.Pet.DefID != pet.DefPawn {
		t.Errorf("expected Pawn, got %d", h.ctx.Pet.DefID)
	}
	if h.ctx.Pet.StageCount != 2 {
		t.Errorf("expected two stages, got %d", h.ctx.Pet.StageCount)
	}
}

func TestHomeDismissesRingingAlarm(t *testing.T) {
	h := newHarness(NewHome())
	h.ctx.Alarm.Ringing = true
	h.step(time.Millisecond)
	h.press(input.Middle)
	if h.ctx.Alarm.Ringing {
		t.Error("expected alarm dismissed")
	}
	if h.mgr.Active() != KindHome {
		t.Errorf("expected the dismissing press to stay home, got %s", h.mgr.Active())
	}
}

func TestPoopClearRemovesPoops(t *testing.T) {
	h := newHarness(NewPoopClear())
	h.ctx.Poops.Add(noon)
	h.ctx.Poops.Add(noon.Add(time.Minute))
	h.step(time.Millisecond)

	h.runFor(preWipeTime + 10*time.Second + cheerTime)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected HOME, got %s", h.mgr.Active())
	}
	if h.ctx.Poops.Count() != 0 {
		t.Errorf("expected poops cleared, got %d", h.ctx.Poops.Count())
	}
}

func TestFishingCancelResetsBoredom(t *testing.T) {
	h := newHarness(NewFishing())
	h.ctx.Pet.SinceGame = time.Hour
	h.step(time.Millisecond)
	h.press(input.Left)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected HOME, got %s", h.mgr.Active())
	}
	if h.ctx.Pet.SinceGame != 0 {
		t.Error("expected fishing to count as play")
	}
}

func waitForBite(h *harness, f *Fishing) {
	for elapsed := time.Duration(0); f.state == fishWaiting && elapsed <= maxBiteWait; elapsed += 100 * time.Millisecond {
		h.step(100 * time.Millisecond)
	}
}

func TestFishingSequenceLands(t *testing.T) {
	h := newHarness(NewFishing())
	h.step(time.Millisecond)
	f := h.mgr.active.(*Fishing)

	waitForBite(h, f)
	if f.state != fishPulling {
		t.Fatalf("expected a bite, state %d", f.state)
	}
	for _, b := range append([]input.Button(nil), f.sequence...) {
		h.press(b)
	}
	h.runFor(pullOutTime + 100*time.Millisecond)
	if f.state != fishFanfare {
		t.Fatalf("expected fanfare, state %d", f.state)
	}
	money := f.catch.Money > 0
	item := f.catch.HasItem
	if money == item {
		t.Errorf("expected exactly one kind of winnings, got %+v", f.catch)
	}
}

func TestFishingWrongButtonGetsAway(t *testing.T) {
	h := newHarness(NewFishing())
	h.step(time.Millisecond)
	f := h.mgr.active.(*Fishing)
	waitForBite(h, f)

	wrong := input.Button((int(f.sequence[0]) + 1) % 3)
	h.press(wrong)
	if f.state != fishGotAway {
		t.Errorf("expected got away, state %d", f.state)
	}
}

func TestAlarmSetAppliesOnSave(t *testing.T) {
	h := newHarness(NewAlarmSet())
	h.step(time.Millisecond)

	h.press(input.Right) // hour 1
	h.press(input.Middle)
	h.press(input.Left) // minute 59
	h.press(input.Middle)
	h.press(input.Right) // enabled
	h.press(input.Middle)
	h.press(input.Middle) // save

	want := alarm.Config{Enabled: true, Hour: 1, Minute: 59}
	if h.ctx.Alarm.Config != want {
		t.Errorf("expected %+v, got %+v", want, h.ctx.Alarm.Config)
	}
	if h.mgr.Active() != KindHome {
		t.Errorf("expected HOME, got %s", h.mgr.Active())
	}
}

func TestShopBuysSelectedItem(t *testing.T) {
	h := newHarness(NewShop())
	h.ctx.Money = 1000
	h.step(time.Millisecond)
	s := h.mgr.active.(*Shop)
	if len(s.stock) == 0 {
		t.Fatal("expected stock")
	}
	id := s.stock[0]

	h.press(input.Middle)
	if h.ctx.Inventory.Count(id) != 1 {
		t.Errorf("expected one item bought, got %d", h.ctx.Inventory.Count(id))
	}
	if h.ctx.Money >= 1000 {
		t.Error("expected money spent")
	}
}

func TestShopRefusesWithoutMoney(t *testing.T) {
	h := newHarness(NewShop())
	h.ctx.Money = 0
	h.step(time.Millisecond)
	h.press(input.Middle)
	if !h.mgr.active.(*Shop).failed {
		t.Error("expected purchase to fail")
	}
}

func TestSuitersAcceptLaysEgg(t *testing.T) {
	h := newHarness(NewSuiters())
	s := suiter.NewRandom(h.ctx.Rng)
	h.ctx.Suiters.Suiter = &s
	h.step(time.Millisecond)
	h.press(input.Middle)

	if h.ctx.Egg == nil {
		t.Fatal("expected an egg")
	}
	if h.ctx.Suiters.Present() {
		t.Error("expected suiter gone")
	}
	if h.mgr.Active() != KindHome {
		t.Errorf("expected HOME, got %s", h.mgr.Active())
	}
}

func TestSuitersWithoutSuiterGoesHome(t *testing.T) {
	h := newHarness(NewSuiters())
	if !h.step(time.Millisecond) {
		t.Error("expected immediate return home")
	}
}

func TestStarGazingSkyIsStablePerDay(t *testing.T) {
	night := noon.Add(11 * time.Hour)
	a := newHarness(NewStarGazing())
	a.now = night
	a.step(0)
	b := newHarness(NewStarGazing())
	b.ctx = a.ctx
	b.now = night.Add(30 * time.Minute)
	b.step(0)

	sa := a.mgr.active.(*StarGazing)
	sb := b.mgr.active.(*StarGazing)
	if !sa.night {
		t.Fatal("expected night at 23:00")
	}
	for i := range sa.stars {
		if sa.stars[i] != sb.stars[i] {
			t.Fatalf("expected identical sky, star %d differs", i)
		}
	}
}

func TestNewPetReplacesDeadPet(t *testing.T) {
	h := newHarness(NewNewPet())
	h.ctx.Pet.Death = &pet.Death{Cause: pet.DeathStarvation, At: noon}
	h.step(time.Millisecond)
	if h.ctx.Pet.Dead() {
		t.Error("expected a new pet")
	}
	h.runFor(newPetShowTime + 100*time.Millisecond)
	if h.mgr.Active() != KindHome {
		t.Errorf("expected HOME, got %s", h.mgr.Active())
	}
}

func TestCreditsEndOnTheirOwn(t *testing.T) {
	h := newHarness(NewCredits())
	h.step(time.Millisecond)
	h.runFor(time.Minute)
	if h.mgr.Active() != KindHome {
		t.Errorf("expected HOME, got %s", h.mgr.Active())
	}
}

func TestHomeRunsSimulation(t *testing.T) {
	h := newHarness(NewHome())
	h.step(time.Millisecond)
	age := h.ctx.Pet.Age
	h.mgr.Tick(&Args{Delta: 5 * sim.StepLength, Now: h.now, Input: h.in, Ctx: h.ctx, TimeScale: 1})
	if h.ctx.Pet.Age-age != 5*sim.StepLength {
		t.Errorf("expected 5s of aging, got %v", h.ctx.Pet.Age-age)
	}
}

func TestHomeHatchesReadyEgg(t *testing.T) {
	h := newHarness(NewHome())
	parent := h.ctx.Pet.UPID
	egg := pet.NewEgg(h.ctx.Rng, &h.ctx.Pet, 9, noon)
	h.ctx.Egg = &egg
	h.step(time.Millisecond)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected an incubating egg to stay home, got %s", h.mgr.Active())
	}

	h.ctx.Egg.Incubated = pet.IncubationTime
	h.step(time.Millisecond)
	if h.mgr.Active() != KindEggHatch {
		t.Fatalf("expected EGG_HATCH, got %s", h.mgr.Active())
	}

	h.runFor(eggShakeTime + eggFarewell + 200*time.Millisecond)
	if h.mgr.Active() != KindHome {
		t.Fatalf("expected HOME after hatching, got %s", h.mgr.Active())
	}
	if h.ctx.Pet.UPID != egg.UPID || h.ctx.Egg != nil {
		t.Errorf("expected the baby from the egg, got %+v", h.ctx.Pet)
	}
	if h.ctx.PetHistory.Len != 1 || h.ctx.PetHistory.Records[0].UPID != parent ||
		h.ctx.PetHistory.Records[0].Cause != pet.DeathLeaving {
		t.Errorf("expected parent filed as leaving, got %+v", h.ctx.PetHistory.All())
	}
}
