// Package scene implements the modes of the device (home, fishing, star
// gazing, ...) and the manager that switches between them.
//
// The set of scenes is closed. Every capability is dispatched through an
// exhaustive type switch in manager.go, and a Scene value can only be one of
// the concrete types declared in this package.
package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/sim"
)

// Kind enumerates the concrete scenes.
type Kind uint8

const (
	KindHome Kind = iota
	KindNewPet
	KindFoodSelect
	KindEat
	KindPetInfo
	KindPoopClear
	KindFishing
	KindStarGazing
	KindAlarmSet
	KindShop
	KindSuiters
	KindEvolve
	KindDeath
	KindCredits
	KindTemplate
	KindEggHatch
)

var kindNames = [...]string{
	KindHome:       "HOME",
	KindNewPet:     "NEW_PET",
	KindFoodSelect: "FOOD_SELECT",
	KindEat:        "EAT",
	KindPetInfo:    "PET_INFO",
	KindPoopClear:  "POOP_CLEAR",
	KindFishing:    "FISHING",
	KindStarGazing: "STAR_GAZING",
	KindAlarmSet:   "ALARM_SET",
	KindShop:       "SHOP",
	KindSuiters:    "SUITERS",
	KindEvolve:     "EVOLVE",
	KindDeath:      "DEATH",
	KindCredits:    "CREDITS",
	KindTemplate:   "TEMPLATE",
	KindEggHatch:   "EGG_HATCH",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Scene is implemented only by the scene types in this package.
type Scene interface {
	Kind() Kind
	isScene()
}

// Args is passed to every scene call.
type Args struct {
	Delta     time.Duration
	Now       timestamp.Timestamp
	Input     *input.Input
	Ctx       *sim.GameContext
	TimeScale float32
	IdleFor   time.Duration
}

// Output is returned from a scene tick. The zero value means remain.
type Output struct {
	next Scene
}

func Remain() Output { return Output{} }

func Goto(s Scene) Output { return Output{next: s} }

// GoHome is the shortcut back to the home scene.
func GoHome() Output { return Output{next: NewHome()} }

// Next returns the requested scene, if any.
func (o Output) Next() (Scene, bool) {
	return o.next, o.next != nil
}

// timer counts down a fixed duration.
type timer struct {
	left time.Duration
}

func newTimer(d time.Duration) timer { return timer{left: d} }

// tick reports whether the timer has run out.
func (t *timer) tick(delta time.Duration) bool {
	t.left -= delta
	return t.left <= 0
}

// cycle moves i by step within [0, n).
func cycle(i, step, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}

func geoVec(x, y float32) geo.Vec2 { return geo.Vec2{X: x, Y: y} }
