package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
)

type poopClearState uint8

const (
	poopPreWipe poopClearState = iota
	poopWiping
	poopCheering
)

const (
	preWipeTime = time.Second
	cheerTime   = 3 * time.Second
	wipeSpeed   = 20 // px per second
	wiperWidth  = 8
)

// PoopClear wipes the screen left to right. Poops are removed on teardown.
type PoopClear struct {
	state poopClearState
	timer timer
	wipeX float32
}

func NewPoopClear() *PoopClear { return &PoopClear{} }

func (*PoopClear) Kind() Kind { return KindPoopClear }
func (*PoopClear) isScene()   {}

func (s *PoopClear) setup(args *Args) {
	s.state = poopPreWipe
	s.timer = newTimer(preWipeTime)
	s.wipeX = -wiperWidth
}

func (s *PoopClear) tick(args *Args) Output {
	switch s.state {
	case poopPreWipe:
		if s.timer.tick(args.Delta) {
			s.state = poopWiping
		}
	case poopWiping:
		s.wipeX += float32(args.Delta.Seconds()) * wipeSpeed
		if s.wipeX > geo.Width {
			s.state = poopCheering
			s.timer = newTimer(cheerTime)
		}
	case poopCheering:
		if s.timer.tick(args.Delta) {
			return GoHome()
		}
	}
	return Remain()
}

func (s *PoopClear) teardown(args *Args) {
	args.Ctx.ClearPoops(args.Now)
}

func (s *PoopClear) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	for i := 0; i < poop.MaxPoops; i++ {
		pp, ok := ctx.Poops.Get(i)
		if !ok {
			continue
		}
		pos := poop.RenderPos(pp)
		if s.state == poopCheering || pos.X < s.wipeX {
			continue
		}
		f.Sprite("poop", pos, 0)
	}
	switch s.state {
	case poopWiping:
		f.Sprite("wiper", geo.Vec2{X: s.wipeX, Y: geo.Height / 2}, 0)
	case poopCheering:
		f.Sprite(PetSpriteName(ctx.Pet.DefID)+"_happy", poop.WonderRect.Center, 0)
	}
}
