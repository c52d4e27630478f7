package scene

import (
	"strconv"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/economy"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/events"
	"github.com/MRamiBalles/sdop/internal/input"
)

type fishingState uint8

const (
	fishWaiting fishingState = iota
	fishPulling
	fishPullOut
	fishFanfare
	fishGotAway
)

const (
	minBiteWait  = time.Second
	maxBiteWait  = 10 * time.Second
	pullWindow   = 5 * time.Second
	maxPullSteps = 4
	pullOutTime  = time.Second
	fanfareTime  = 2 * time.Second
	gotAwayTime  = 2 * time.Second
)

// Catch is what a fishing trip yields.
type Catch struct {
	Money   economy.Money
	Item    item.ID
	HasItem bool
}

// rollCatch draws the winnings: half the time money, otherwise an item or
// a piece of garbage.
func rollCatch(src *rng.Rng) Catch {
	roll := src.F32()
	switch {
	case roll < 0.5:
		return Catch{Money: economy.Money(src.IntRange(5, 30))}
	case roll < 0.8:
		return Catch{Item: rng.Choice(src, []item.ID{item.ItemShell, item.ItemPearl, item.ItemGoldenFish}), HasItem: true}
	default:
		return Catch{Item: item.ItemOldBoot, HasItem: true}
	}
}

// Fishing waits for a bite, then asks for a short button sequence.
type Fishing struct {
	state    fishingState
	timer    timer
	sequence []input.Button
	progress int
	catch    Catch
}

func NewFishing() *Fishing { return &Fishing{} }

func (*Fishing) Kind() Kind { return KindFishing }
func (*Fishing) isScene()   {}

func (s *Fishing) setup(args *Args) {
	s.state = fishWaiting
	s.timer = newTimer(args.Ctx.Rng.DurationRange(minBiteWait, maxBiteWait))
	s.sequence = s.sequence[:0]
	s.progress = 0
}

func (s *Fishing) tick(args *Args) Output {
	in := args.Input
	switch s.state {
	case fishWaiting:
		if in.Pressed(input.Left) {
			return GoHome()
		}
		if s.timer.tick(args.Delta) {
			src := args.Ctx.Rng
			n := src.IntRange(1, maxPullSteps)
			for i := 0; i < n; i++ {
				s.sequence = append(s.sequence, input.Button(src.IntN(3)))
			}
			s.state = fishPulling
			s.timer = newTimer(pullWindow)
		}
	case fishPulling:
		if s.timer.tick(args.Delta) {
			s.gotAway()
			return Remain()
		}
		for b := input.Left; b <= input.Right; b++ {
			if !in.Pressed(b) {
				continue
			}
			if b != s.sequence[s.progress] {
				s.gotAway()
				return Remain()
			}
			s.progress++
			if s.progress == len(s.sequence) {
				s.state = fishPullOut
				s.timer = newTimer(pullOutTime)
			}
			break
		}
	case fishPullOut:
		if s.timer.tick(args.Delta) {
			s.land(args)
		}
	case fishFanfare, fishGotAway:
		if s.timer.tick(args.Delta) {
			return GoHome()
		}
	}
	return Remain()
}

func (s *Fishing) gotAway() {
	s.state = fishGotAway
	s.timer = newTimer(gotAwayTime)
}

func (s *Fishing) land(args *Args) {
	ctx := args.Ctx
	s.catch = rollCatch(ctx.Rng)
	payload := map[string]interface{}{"money": int32(s.catch.Money)}
	if s.catch.HasItem {
		ctx.Inventory.Add(s.catch.Item, 1)
		def, _ := item.Get(s.catch.Item)
		payload["item"] = def.Name
	} else {
		ctx.Money.Add(s.catch.Money)
	}
	ctx.Emit(args.Now, events.EventTypeFishCaught, "", payload)
	ctx.Sounds.Push(sound.SongFanfare)
	s.state = fishFanfare
	s.timer = newTimer(fanfareTime)
}

func (s *Fishing) teardown(args *Args) {
	args.Ctx.Pet.Played()
}

func (s *Fishing) render(f *display.Frame, args *Args) {
	f.Sprite(PetSpriteName(args.Ctx.Pet.DefID)+"_fishing", geo.Vec2{X: 16, Y: 40}, int(s.state))
	f.Sprite("water", geo.Vec2{X: geo.Width / 2, Y: 100}, 0)
	switch s.state {
	case fishWaiting:
		f.Text(4, 4, "WAITING")
	case fishPulling:
		f.Text(4, 4, "PULL!")
		f.Text(4, 14, s.sequence[s.progress].String())
	case fishPullOut:
		f.Text(4, 4, "...")
	case fishFanfare:
		if s.catch.HasItem {
			def, _ := item.Get(s.catch.Item)
			f.Text(4, 4, def.Name)
		} else {
			f.Text(4, 4, "$"+strconv.Itoa(int(s.catch.Money)))
		}
	case fishGotAway:
		f.Text(4, 4, "GOT AWAY")
	}
}
