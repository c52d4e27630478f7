package scene

import (
	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/rng"
)

const (
	starCount = 24
	ufoOdds   = 0.1
)

// IsNight reports whether the sky is dark at the given hour.
func IsNight(hour int) bool {
	return hour >= 20 || hour < 6
}

// StarGazing shows a sky that is fixed for a pet on a given date. On some
// nights a UFO passes by.
type StarGazing struct {
	stars []geo.Vec2
	night bool
	ufo   bool
	ufoX  float32
}

func NewStarGazing() *StarGazing { return &StarGazing{} }

func (*StarGazing) Kind() Kind { return KindStarGazing }
func (*StarGazing) isScene()   {}

func (s *StarGazing) setup(args *Args) {
	src := rng.New(uint64(args.Ctx.Pet.UPID) ^ args.Now.DateSeed())
	sky := geo.Rect{Center: geo.Vec2{X: geo.Width / 2, Y: geo.Height / 4}, Size: geo.Vec2{X: geo.Width, Y: geo.Height / 2}}
	s.stars = s.stars[:0]
	for i := 0; i < starCount; i++ {
		s.stars = append(s.stars, sky.RandomPointInside(src))
	}
	s.night = IsNight(args.Now.Hour())
	s.ufo = s.night && src.F32() < ufoOdds
	s.ufoX = 0
}

func (s *StarGazing) tick(args *Args) Output {
	if s.ufo {
		s.ufoX += float32(args.Delta.Seconds()) * 6
		if s.ufoX > geo.Width {
			s.ufoX = 0
		}
	}
	if args.Input.AnyPressed() {
		return GoHome()
	}
	return Remain()
}

func (s *StarGazing) teardown(args *Args) {
	if s.ufo {
		args.Ctx.Pet.SeenAlien = true
	}
}

func (s *StarGazing) render(f *display.Frame, args *Args) {
	if !s.night {
		f.Text(4, 4, "TOO BRIGHT")
		return
	}
	f.Inverted = true
	for _, star := range s.stars {
		f.Sprite("star", star, 0)
	}
	if s.ufo {
		f.Sprite("ufo", geo.Vec2{X: s.ufoX, Y: 20}, 0)
	}
	f.Sprite(PetSpriteName(args.Ctx.Pet.DefID)+"_back", geo.Vec2{X: geo.Width / 2, Y: 110}, 0)
}
