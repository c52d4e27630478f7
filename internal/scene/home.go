package scene

import (
	"fmt"
	"strings"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/sim"
)

type homeOption uint8

const (
	optFeed homeOption = iota
	optClean
	optPlay
	optStars
	optShop
	optSuiter
	optInfo
	optAlarm
	optCredits

	optCount
)

var homeOptionNames = [optCount]string{
	optFeed:    "FEED",
	optClean:   "CLEAN",
	optPlay:    "FISH",
	optStars:   "STARS",
	optShop:    "SHOP",
	optSuiter:  "SUITER",
	optInfo:    "INFO",
	optAlarm:   "ALARM",
	optCredits: "CREDITS",
}

// Home runs the simulation and hosts the main menu.
type Home struct {
	option homeOption
	anime  display.Anime
}

func NewHome() *Home {
	return &Home{anime: display.NewAnime(2, 500*time.Millisecond)}
}

func (*Home) Kind() Kind { return KindHome }
func (*Home) isScene()   {}

func (h *Home) setup(args *Args) {
	h.option = optFeed
}

func (h *Home) tick(args *Args) Output {
	ctx := args.Ctx
	sim.TickSim(args.TimeScale, args.Delta, args.Now, ctx)
	h.anime.Tick(args.Delta)

	if ctx.Pet.Dead() {
		return Goto(NewDeath())
	}
	if ctx.Pet.EvolvePending {
		return Goto(NewEvolve())
	}
	if ctx.Egg != nil && ctx.Egg.Ready() {
		return Goto(NewEggHatch())
	}

	in := args.Input
	if ctx.Alarm.Ringing {
		if in.AnyPressed() {
			ctx.Alarm.Dismiss()
		}
		return Remain()
	}

	switch {
	case in.Pressed(input.Left):
		h.option = homeOption(cycle(int(h.option), -1, int(optCount)))
	case in.Pressed(input.Right):
		h.option = homeOption(cycle(int(h.option), 1, int(optCount)))
	case in.Pressed(input.Middle):
		return h.activate(ctx)
	}
	return Remain()
}

func (h *Home) activate(ctx *sim.GameContext) Output {
	switch h.option {
	case optFeed:
		return Goto(NewFoodSelect())
	case optClean:
		return Goto(NewPoopClear())
	case optPlay:
		return Goto(NewFishing())
	case optStars:
		return Goto(NewStarGazing())
	case optShop:
		return Goto(NewShop())
	case optSuiter:
		if ctx.Suiters.Present() {
			return Goto(NewSuiters())
		}
	case optInfo:
		return Goto(NewPetInfo())
	case optAlarm:
		return Goto(NewAlarmSet())
	case optCredits:
		return Goto(NewCredits())
	}
	return Remain()
}

func (h *Home) teardown(args *Args) {}

// PetSpriteName is the sprite a host draws for a species.
func PetSpriteName(id pet.DefID) string {
	return "pet_" + strings.ToLower(pet.Get(id).Name)
}

func (h *Home) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	p := &ctx.Pet

	f.Text(0, 0, args.Now.Time().Format("15:04"))
	f.Text(40, 0, fmt.Sprintf("$%d", ctx.Money))

	name := PetSpriteName(p.DefID)
	if p.Definition().ShouldBeSleeping(args.Now) {
		name += "_sleep"
	}
	f.Sprite(name, poop.WonderRect.Center, h.anime.Current())

	for i := 0; i < poop.MaxPoops; i++ {
		if pp, ok := ctx.Poops.Get(i); ok {
			f.Sprite("poop", poop.RenderPos(pp), h.anime.Current())
		}
	}
	if s := ctx.Suiters.Suiter; s != nil {
		f.Sprite("suiter_"+strings.ToLower(pet.Get(s.DefID).Name), geo.Vec2{X: 52, Y: 30}, h.anime.Current())
	}
	if ctx.Egg != nil {
		f.Sprite("egg", geo.Vec2{X: 10, Y: 100}, 0)
	}

	if ctx.Alarm.Ringing {
		f.Inverted = h.anime.Current() == 1
		f.Text(8, 112, "ALARM!")
		return
	}
	f.Text(8, 116, "< "+homeOptionNames[h.option]+" >")
}
