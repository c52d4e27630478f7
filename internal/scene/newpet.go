package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/input"
)

const newPetShowTime = 3 * time.Second

// NewPet introduces the current pet. A dead pet is replaced on setup.
type NewPet struct {
	timer timer
}

func NewNewPet() *NewPet { return &NewPet{} }

func (*NewPet) Kind() Kind { return KindNewPet }
func (*NewPet) isScene()   {}

func (s *NewPet) setup(args *Args) {
	if args.Ctx.Pet.Dead() {
		args.Ctx.ReplacePet(args.Now)
	}
	s.timer = newTimer(newPetShowTime)
}

func (s *NewPet) tick(args *Args) Output {
	if s.timer.tick(args.Delta) || args.Input.Pressed(input.Middle) {
		return GoHome()
	}
	return Remain()
}

func (s *NewPet) teardown(args *Args) {}

func (s *NewPet) render(f *display.Frame, args *Args) {
	p := &args.Ctx.Pet
	f.Text(4, 10, "HELLO")
	f.Text(4, 20, p.Name)
	f.Sprite(PetSpriteName(p.DefID), geo.Vec2{X: geo.Width / 2, Y: geo.Height / 2}, 0)
}
