package scene

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/events"
)

const evolveTime = 3 * time.Second

// Evolve flashes between the old and new species, then commits.
type Evolve struct {
	from  pet.DefID
	to    pet.DefID
	timer timer
	anime display.Anime
}

func NewEvolve() *Evolve { return &Evolve{} }

func (*Evolve) Kind() Kind { return KindEvolve }
func (*Evolve) isScene()   {}

func (s *Evolve) setup(args *Args) {
	p := &args.Ctx.Pet
	s.from = p.DefID
	s.to = p.EvolveTo
	s.timer = newTimer(evolveTime)
	s.anime = display.NewAnime(2, 250*time.Millisecond)
}

func (s *Evolve) tick(args *Args) Output {
	s.anime.Tick(args.Delta)
	if s.timer.tick(args.Delta) {
		return GoHome()
	}
	return Remain()
}

func (s *Evolve) teardown(args *Args) {
	ctx := args.Ctx
	if !ctx.Pet.CommitEvolve(args.Now) {
		return
	}
	ctx.Emit(args.Now, events.EventTypeEvolved, "", map[string]string{
		"from": pet.Get(s.from).Name,
		"to":   pet.Get(s.to).Name,
	})
	ctx.Sounds.Push(sound.SongEvolve)
}

func (s *Evolve) render(f *display.Frame, args *Args) {
	id := s.from
	if s.anime.Current() == 1 {
		id = s.to
	}
	f.Sprite(PetSpriteName(id), geo.Vec2{X: geo.Width / 2, Y: geo.Height / 2}, 0)
	f.Text(4, 4, "EVOLVING")
}
