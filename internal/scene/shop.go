package scene

import (
	"fmt"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/economy"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/input"
)

// Shop sells the day's stock. The last entry leaves.
type Shop struct {
	stock    []item.ID
	selected int
	failed   bool
}

func NewShop() *Shop { return &Shop{} }

func (*Shop) Kind() Kind { return KindShop }
func (*Shop) isScene()   {}

func (s *Shop) setup(args *Args) {
	s.stock = args.Ctx.Shop.ItemSet(args.Now)
	s.selected = 0
	s.failed = false
}

func (s *Shop) tick(args *Args) Output {
	n := len(s.stock) + 1
	in := args.Input
	switch {
	case in.Pressed(input.Left):
		s.selected = cycle(s.selected, -1, n)
		s.failed = false
	case in.Pressed(input.Right):
		s.selected = cycle(s.selected, 1, n)
		s.failed = false
	case in.Pressed(input.Middle):
		if s.selected == len(s.stock) {
			return GoHome()
		}
		s.failed = !args.Ctx.Buy(s.stock[s.selected], args.Now)
	}
	return Remain()
}

func (s *Shop) teardown(args *Args) {}

func (s *Shop) render(f *display.Frame, args *Args) {
	ctx := args.Ctx
	f.Text(4, 4, fmt.Sprintf("SHOP $%d", ctx.Money))
	if s.selected == len(s.stock) {
		f.Text(8, 60, "< EXIT >")
		return
	}
	id := s.stock[s.selected]
	def, _ := item.Get(id)
	f.Sprite("item_"+def.Name, geoVec(32, 40), 0)
	f.Text(8, 60, "< "+def.Name+" >")
	f.Text(8, 72, fmt.Sprintf("$%d OWN %d", economy.Price(id), ctx.Inventory.Count(id)))
	if s.failed {
		f.Text(8, 90, "NO MONEY")
	}
}
