package scene

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/input"
)

const petInfoPages = 4

// PetInfo pages through the pet's stats.
type PetInfo struct {
	page int
}

func NewPetInfo() *PetInfo { return &PetInfo{} }

func (*PetInfo) Kind() Kind { return KindPetInfo }
func (*PetInfo) isScene()   {}

func (s *PetInfo) setup(args *Args) { s.page = 0 }

func (s *PetInfo) tick(args *Args) Output {
	in := args.Input
	switch {
	case in.Pressed(input.Left):
		s.page = cycle(s.page, -1, petInfoPages)
	case in.Pressed(input.Right):
		s.page = cycle(s.page, 1, petInfoPages)
	case in.Pressed(input.Middle):
		return GoHome()
	}
	return Remain()
}

func (s *PetInfo) teardown(args *Args) {}

func (s *PetInfo) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	p := &ctx.Pet
	def := p.Definition()
	f.Text(4, 4, fmt.Sprintf("INFO %d/%d", s.page+1, petInfoPages))
	switch s.page {
	case 0:
		f.Text(4, 20, p.Name)
		f.Text(4, 30, def.Name)
		f.Text(4, 40, def.Stage.String())
		f.Sprite(PetSpriteName(p.DefID), geo.Vec2{X: geo.Width / 2, Y: 80}, 0)
	case 1:
		f.Text(4, 20, "AGE")
		f.Text(4, 30, formatAge(p.Age))
		f.Text(4, 50, "WEIGHT")
		f.Text(4, 60, fmt.Sprintf("%.1fg", p.Weight()))
	case 2:
		f.Text(4, 20, "STOMACH")
		f.Text(4, 30, fmt.Sprintf("%.1f/%.0f", p.Stomach, def.StomachSize))
		if p.Starving > 0 {
			f.Text(4, 50, "STARVING")
		}
	case 3:
		f.Text(4, 20, "PAST PETS")
		f.Text(4, 30, fmt.Sprintf("%d", ctx.PetHistory.Len))
		f.Text(4, 50, "STAGES")
		f.Text(4, 60, fmt.Sprintf("%d", p.StageCount))
	}
}

func formatAge(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int(d%(24*time.Hour)) / int(time.Hour)
	return fmt.Sprintf("%dd %dh", days, hours)
}
