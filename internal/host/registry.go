package host

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/engine"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/save"
)

var (
	ErrUnknownHandle = errors.New("host: unknown handle")
	ErrRegistryFull  = errors.New("host: too many games")
)

// Handle is an opaque game identifier.
type Handle string

type game struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// Registry holds independent engines with no storage behind them.
type Registry struct {
	mu     sync.RWMutex
	games  map[Handle]*game
	max    int
	clock  clock.Clock
	logger *logger.Logger
}

// NewRegistry allows at most max live games; max <= 0 means no limit.
func NewRegistry(max int, clk clock.Clock, log *logger.Logger) *Registry {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Registry{
		games:  make(map[Handle]*game),
		max:    max,
		clock:  clk,
		logger: log,
	}
}

func (r *Registry) add(e *engine.Engine) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.games) >= r.max {
		return "", ErrRegistryFull
	}
	h := Handle(uuid.NewString())
	r.games[h] = &game{engine: e}
	r.logger.Event("GAME_CREATED", string(h), e.String())
	return h, nil
}

// CreateBlank starts a fresh game.
func (r *Registry) CreateBlank() (Handle, error) {
	return r.add(engine.NewBlank(r.clock.Now(), logger.Discard()))
}

// CreateFromSave starts a game from s, caught up to now.
func (r *Registry) CreateFromSave(s save.SaveFile) (Handle, error) {
	return r.add(engine.NewFromSave(r.clock.Now(), s, logger.Discard()))
}

func (r *Registry) get(h Handle) (*game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return g, nil
}

// with runs fn under the game's lock.
func (r *Registry) with(h Handle, fn func(e *engine.Engine)) error {
	g, err := r.get(h)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.engine)
	return nil
}

func (r *Registry) Tick(h Handle, delta time.Duration) error {
	return r.with(h, func(e *engine.Engine) { e.Tick(delta) })
}

// Refresh redraws and returns a copy of the frame.
func (r *Registry) Refresh(h Handle, delta time.Duration) (display.Frame, error) {
	var f display.Frame
	err := r.with(h, func(e *engine.Engine) { f = e.RefreshDisplay(delta).Clone() })
	return f, err
}

func (r *Registry) UpdateInput(h Handle, states input.States) error {
	return r.with(h, func(e *engine.Engine) { e.UpdateInput(states) })
}

func (r *Registry) SetTimeScale(h Handle, scale float32) error {
	if scale < 0 || scale > MaxTimeScale {
		return ErrBadTimeScale
	}
	return r.with(h, func(e *engine.Engine) { e.SetSimTimeScale(scale) })
}

// Snapshot returns the game's current state whatever scene it is in.
func (r *Registry) Snapshot(h Handle) (save.SaveFile, error) {
	var s save.SaveFile
	err := r.with(h, func(e *engine.Engine) { s = save.Generate(e.Now(), e.Context()) })
	return s, err
}

func (r *Registry) Destroy(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[h]; !ok {
		return ErrUnknownHandle
	}
	delete(r.games, h)
	r.logger.Event("GAME_DESTROYED", string(h), "")
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
