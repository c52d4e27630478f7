package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
)

const (
	eggShakeTime  = 4 * time.Second
	eggFarewell   = 3 * time.Second
	eggShakeRange = 2
)

// EggHatch shakes the ready egg, then sees the parent off. The baby takes
// over on teardown.
type EggHatch struct {
	elapsed time.Duration
	anime   display.Anime
}

func NewEggHatch() *EggHatch { return &EggHatch{} }

func (*EggHatch) Kind() Kind { return KindEggHatch }
func (*EggHatch) isScene()   {}

func (s *EggHatch) setup(args *Args) {
	s.elapsed = 0
	s.anime = display.NewAnime(2, 150*time.Millisecond)
}

func (s *EggHatch) tick(args *Args) Output {
	s.elapsed += args.Delta
	s.anime.Tick(args.Delta)
	if s.elapsed >= eggShakeTime+eggFarewell {
		return GoHome()
	}
	return Remain()
}

func (s *EggHatch) teardown(args *Args) {
	args.Ctx.HatchEgg(args.Now)
}

func (s *EggHatch) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	if s.elapsed < eggShakeTime {
		dx := float32(eggShakeRange)
		if s.anime.Current() == 1 {
			dx = -dx
		}
		f.Sprite("egg", geo.Vec2{X: geo.Width/2 + dx, Y: geo.Height / 2}, 0)
		f.Text(4, 4, "HATCHING")
		return
	}
	f.Sprite("ufo", geo.Vec2{X: 20, Y: 30}, s.anime.Current())
	f.Sprite(PetSpriteName(ctx.Pet.DefID), geo.Vec2{X: 20, Y: geo.Height/2 + 30}, 0)
	f.Text(4, 4, "GOODBYE")
	f.Text(4, 14, ctx.Pet.Name)
}
