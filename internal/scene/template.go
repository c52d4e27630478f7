package scene

import "github.com/MRamiBalles/sdop/internal/display"

// Template is the minimal scene, kept as a starting point for new ones.
type Template struct{}

func NewTemplate() *Template { return &Template{} }

func (*Template) Kind() Kind { return KindTemplate }
func (*Template) isScene()   {}

func (s *Template) setup(args *Args) {}

func (s *Template) tick(args *Args) Output {
	if args.Input.AnyPressed() {
		return GoHome()
	}
	return Remain()
}

func (s *Template) teardown(args *Args) {}

func (s *Template) render(f *display.Frame, args *Args) {
	f.Text(4, 4, "TEMPLATE")
}
