package scene

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
)

// IdleTimeout sends an untouched device back home.
const IdleTimeout = 5 * time.Minute

// Observer is told about every setup and teardown.
type Observer interface {
	SceneSetup(kind Kind, args *Args)
	SceneTeardown(kind Kind, args *Args)
}

// Manager owns the active scene. A transition requested by a tick is fully
// applied (teardown, then setup) before Tick returns.
type Manager struct {
	active   Scene
	started  bool
	observer Observer
}

// NewManager creates a manager that will set up initial on its first tick.
func NewManager(initial Scene, observer Observer) *Manager {
	return &Manager{active: initial, observer: observer}
}

// Active returns the kind of the current scene.
func (m *Manager) Active() Kind {
	return m.active.Kind()
}

// Started reports whether the active scene has been set up.
func (m *Manager) Started() bool {
	return m.started
}

// Tick runs the active scene and applies any transition it requests.
// It reports whether the active scene changed.
func (m *Manager) Tick(args *Args) bool {
	if !m.started {
		m.setup(args)
	}

	out := tick(m.active, args)
	next, ok := out.Next()
	if !ok && args.IdleFor >= IdleTimeout && idleReturns(m.active) {
		next, ok = NewHome(), true
	}
	if !ok {
		return false
	}
	m.switchTo(next, args)
	return true
}

// Reset replaces the active scene outside a tick, tearing the old one down
// if it was set up. The new scene is set up on the next Tick.
func (m *Manager) Reset(initial Scene, args *Args) {
	if m.started {
		m.teardown(args)
	}
	m.active = initial
	m.started = false
}

// Render draws the active scene. Nothing is drawn before the first Tick.
func (m *Manager) Render(f *display.Frame, args *Args) {
	f.Reset(m.active.Kind().String())
	if !m.started {
		return
	}
	render(m.active, f, args)
}

func (m *Manager) switchTo(next Scene, args *Args) {
	m.teardown(args)
	m.active = next
	m.setup(args)
}

func (m *Manager) setup(args *Args) {
	setup(m.active, args)
	m.started = true
	if m.observer != nil {
		m.observer.SceneSetup(m.active.Kind(), args)
	}
}

func (m *Manager) teardown(args *Args) {
	teardown(m.active, args)
	m.started = false
	if m.observer != nil {
		m.observer.SceneTeardown(m.active.Kind(), args)
	}
}

// idleReturns lists scenes that an idle timeout may interrupt.
func idleReturns(s Scene) bool {
	switch s.(type) {
	case *Home, *Death, *Evolve, *NewPet, *EggHatch:
		return false
	}
	return true
}

func unknown(s Scene) string {
	return fmt.Sprintf("scene: unknown variant %T", s)
}

func setup(s Scene, args *Args) {
	switch s := s.(type) {
	case *Home:
		s.setup(args)
	case *NewPet:
		s.setup(args)
	case *FoodSelect:
		s.setup(args)
	case *Eat:
		s.setup(args)
	case *PetInfo:
		s.setup(args)
	case *PoopClear:
		s.setup(args)
	case *Fishing:
		s.setup(args)
	case *StarGazing:
		s.setup(args)
	case *AlarmSet:
		s.setup(args)
	case *Shop:
		s.setup(args)
	case *Suiters:
		s.setup(args)
	case *Evolve:
		s.setup(args)
	case *Death:
		s.setup(args)
	case *Credits:
		s.setup(args)
	case *Template:
		s.setup(args)
	case *EggHatch:
		s.setup(args)
	default:
		panic(unknown(s))
	}
}

func tick(s Scene, args *Args) Output {
	switch s := s.(type) {
	case *Home:
		return s.tick(args)
	case *NewPet:
		return s.tick(args)
	case *FoodSelect:
		return s.tick(args)
	case *Eat:
		return s.tick(args)
	case *PetInfo:
		return s.tick(args)
	case *PoopClear:
		return s.tick(args)
	case *Fishing:
		return s.tick(args)
	case *StarGazing:
		return s.tick(args)
	case *AlarmSet:
		return s.tick(args)
	case *Shop:
		return s.tick(args)
	case *Suiters:
		return s.tick(args)
	case *Evolve:
		return s.tick(args)
	case *Death:
		return s.tick(args)
	case *Credits:
		return s.tick(args)
	case *Template:
		return s.tick(args)
	case *EggHatch:
		return s.tick(args)
	default:
		panic(unknown(s))
	}
}

func teardown(s Scene, args *Args) {
	switch s := s.(type) {
	case *Home:
		s.teardown(args)
	case *NewPet:
		s.teardown(args)
	case *FoodSelect:
		s.teardown(args)
	case *Eat:
		s.teardown(args)
	case *PetInfo:
		s.teardown(args)
	case *PoopClear:
		s.teardown(args)
	case *Fishing:
		s.teardown(args)
	case *StarGazing:
		s.teardown(args)
	case *AlarmSet:
		s.teardown(args)
	case *Shop:
		s.teardown(args)
	case *Suiters:
		s.teardown(args)
	case *Evolve:
		s.teardown(args)
	case *Death:
		s.teardown(args)
	case *Credits:
		s.teardown(args)
	case *Template:
		s.teardown(args)
	case *EggHatch:
		s.teardown(args)
	default:
		panic(unknown(s))
	}
}

func render(s Scene, f *display.Frame, args *Args) {
	switch s := s.(type) {
	case *Home:
		s.render(f, args)
	case *NewPet:
		s.render(f, args)
	case *FoodSelect:
		s.render(f, args)
	case *Eat:
		s.render(f, args)
	case *PetInfo:
		s.render(f, args)
	case *PoopClear:
		s.render(f, args)
	case *Fishing:
		s.render(f, args)
	case *StarGazing:
		s.render(f, args)
	case *AlarmSet:
		s.render(f, args)
	case *Shop:
		s.render(f, args)
	case *Suiters:
		s.render(f, args)
	case *Evolve:
		s.render(f, args)
	case *Death:
		s.render(f, args)
	case *Credits:
		s.render(f, args)
	case *Template:
		s.render(f, args)
	case *EggHatch:
		s.render(f, args)
	default:
		panic(unknown(s))
	}
}
