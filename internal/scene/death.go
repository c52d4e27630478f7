package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/input"
)

const deathMinShow = 2 * time.Second

// Death mourns the pet. Leaving it replaces the pet.
type Death struct {
	elapsed time.Duration
}

func NewDeath() *Death { return &Death{} }

func (*Death) Kind() Kind { return KindDeath }
func (*Death) isScene()   {}

func (s *Death) setup(args *Args) { s.elapsed = 0 }

func (s *Death) tick(args *Args) Output {
	s.elapsed += args.Delta
	if s.elapsed >= deathMinShow && args.Input.Pressed(input.Middle) {
		return Goto(NewNewPet())
	}
	return Remain()
}

func (s *Death) teardown(args *Args) {
	args.Ctx.ReplacePet(args.Now)
}

func (s *Death) render(f *display.Frame, args *Args) {
	p := &args.Ctx.Pet
	f.Sprite("tombstone", geo.Vec2{X: geo.Width / 2, Y: 60}, 0)
	f.Text(4, 4, p.Name)
	if p.Death != nil {
		f.Text(4, 90, p.Death.Cause.String())
		f.Text(4, 100, p.Death.At.Time().Format("2006-01-02"))
	}
}
