package scene

import (
	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
)

var creditLines = []string{
	"SDOP",
	"",
	"A POCKET PET",
	"",
	"CODE",
	"ART",
	"SOUND",
	"",
	"THANKS FOR",
	"PLAYING",
}

const (
	creditLineHeight  = 12
	creditScrollSpeed = 10 // px per second
)

// Credits scrolls the credit roll upward once.
type Credits struct {
	offset float32
}

func NewCredits() *Credits { return &Credits{} }

func (*Credits) Kind() Kind { return KindCredits }
func (*Credits) isScene()   {}

func (s *Credits) setup(args *Args) { s.offset = 0 }

func (s *Credits) tick(args *Args) Output {
	s.offset += float32(args.Delta.Seconds()) * creditScrollSpeed
	end := float32(geo.Height + len(creditLines)*creditLineHeight)
	if s.offset > end || args.Input.AnyPressed() {
		return GoHome()
	}
	return Remain()
}

func (s *Credits) teardown(args *Args) {}

func (s *Credits) render(f *display.Frame, args *Args) {
	for i, line := range creditLines {
		y := geo.Height + float32(i*creditLineHeight) - s.offset
		if y < -creditLineHeight || y > geo.Height {
			continue
		}
		f.Text(4, y, line)
	}
}
