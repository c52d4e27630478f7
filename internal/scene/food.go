package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/input"
)

// FoodSelect lists the unlocked foods plus a way back.
type FoodSelect struct {
	foods    []item.FoodID
	selected int
}

func NewFoodSelect() *FoodSelect { return &FoodSelect{} }

func (*FoodSelect) Kind() Kind { return KindFoodSelect }
func (*FoodSelect) isScene()   {}

func (s *FoodSelect) setup(args *Args) {
	s.foods = args.Ctx.UnlockedFood.List()
	s.selected = 0
}

func (s *FoodSelect) tick(args *Args) Output {
	n := len(s.foods) + 1
	in := args.Input
	switch {
	case in.Pressed(input.Left):
		s.selected = cycle(s.selected, -1, n)
	case in.Pressed(input.Right):
		s.selected = cycle(s.selected, 1, n)
	case in.Pressed(input.Middle):
		if s.selected == len(s.foods) {
			return GoHome()
		}
		return Goto(NewEat(s.foods[s.selected]))
	}
	return Remain()
}

func (s *FoodSelect) teardown(args *Args) {}

func (s *FoodSelect) render(f *display.Frame, args *Args) {
	f.Text(4, 4, "FEED")
	if s.selected == len(s.foods) {
		f.Text(8, 60, "< BACK >")
		return
	}
	food := item.GetFood(s.foods[s.selected])
	f.Sprite("food_"+food.Name, geo.Vec2{X: geo.Width / 2, Y: 50}, 0)
	f.Text(8, 80, "< "+food.Name+" >")
}

const eatTime = 2 * time.Second

// Eat plays the meal and feeds the pet when it finishes.
type Eat struct {
	food  item.FoodID
	timer timer
	anime display.Anime
}

func NewEat(food item.FoodID) *Eat { return &Eat{food: food} }

func (*Eat) Kind() Kind { return KindEat }
func (*Eat) isScene()   {}

func (s *Eat) setup(args *Args) {
	s.timer = newTimer(eatTime)
	s.anime = display.NewAnime(4, eatTime/4)
}

func (s *Eat) tick(args *Args) Output {
	s.anime.Tick(args.Delta)
	if s.timer.tick(args.Delta) {
		return GoHome()
	}
	return Remain()
}

func (s *Eat) teardown(args *Args) {
	args.Ctx.Feed(s.food, args.Now)
}

func (s *Eat) render(f *display.Frame, args *Args) {
	f.Sprite(PetSpriteName(args.Ctx.Pet.DefID)+"_eat", geo.Vec2{X: 24, Y: 64}, s.anime.Current())
	f.Sprite("food_"+item.GetFood(s.food).Name, geo.Vec2{X: 44, Y: 70}, s.anime.Current())
}
