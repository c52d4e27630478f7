package scene

import (
	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/input"
)

// Suiters lets the player accept or turn away a visiting suiter.
type Suiters struct{}

func NewSuiters() *Suiters { return &Suiters{} }

func (*Suiters) Kind() Kind { return KindSuiters }
func (*Suiters) isScene()   {}

func (s *Suiters) setup(args *Args) {}

func (s *Suiters) tick(args *Args) Output {
	ctx := args.Ctx
	if !ctx.Suiters.Present() {
		return GoHome()
	}
	in := args.Input
	switch {
	case in.Pressed(input.Middle):
		ctx.AcceptSuiter(args.Now)
		return GoHome()
	case in.Pressed(input.Left):
		ctx.Suiters.Clear()
		return GoHome()
	case in.Pressed(input.Right):
		return GoHome()
	}
	return Remain()
}

func (s *Suiters) teardown(args *Args) {}

func (s *Suiters) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	sr := ctx.Suiters.Suiter
	if sr == nil {
		return
	}
	f.Text(4, 4, sr.Name)
	f.Text(4, 14, pet.Get(sr.DefID).Name)
	f.Sprite(PetSpriteName(ctx.Pet.DefID), geoVec(18, 64), 0)
	f.Sprite(PetSpriteName(sr.DefID), geoVec(46, 64), 0)
	if ctx.Egg != nil {
		f.Text(4, 100, "EGG WAITING")
	}
	f.Text(4, 116, "NO  YES  LATER")
}
