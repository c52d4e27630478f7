package engine

import (
	"fmt"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/save"
	"github.com/MRamiBalles/sdop/internal/scene"
	"github.com/MRamiBalles/sdop/internal/sim"
)

const (
	// MaxCatchUp bounds how much offline time a loaded save is simulated for.
	MaxCatchUp = 7 * 24 * time.Hour
	// CatchUpChunk is how far the clock moves between catch-up batches, so
	// poops and sleep follow the offline hours.
	CatchUpChunk = time.Minute
)

// Engine is one running device.
type Engine struct {
	ctx       *sim.GameContext
	manager   *scene.Manager
	input     input.Input
	pending   input.States
	now       timestamp.Timestamp
	timeScale float32
	idleFor   time.Duration
	frame     display.Frame
	logger    *logger.Logger
}

// NewBlank starts a fresh game at ts, opening on the new pet scene.
func NewBlank(ts timestamp.Timestamp, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	e := &Engine{
		ctx:       sim.NewGameContext(ts),
		now:       ts,
		timeScale: 1,
		logger:    log,
	}
	e.manager = scene.NewManager(scene.NewNewPet(), e)
	return e
}

// NewFromSave boots straight from a save, catching up to ts.
func NewFromSave(ts timestamp.Timestamp, s save.SaveFile, log *logger.Logger) *Engine {
	e := NewBlank(ts, log)
	e.LoadSave(ts, s)
	return e
}

// UpdateInput records which buttons are held. It takes effect on the next Tick.
func (e *Engine) UpdateInput(states input.States) {
	e.pending = states
}

// SetSimTimeScale speeds up or freezes the simulation. Scenes keep running in
// real time.
func (e *Engine) SetSimTimeScale(scale float32) {
	e.timeScale = scale
}

func (e *Engine) SimTimeScale() float32 { return e.timeScale }

// Now is the engine's idea of the current time.
func (e *Engine) Now() timestamp.Timestamp { return e.now }

// Context exposes the game state to hosts for read-only views.
func (e *Engine) Context() *sim.GameContext { return e.ctx }

// ActiveScene returns the kind of the current scene.
func (e *Engine) ActiveScene() scene.Kind { return e.manager.Active() }

func (e *Engine) args(delta time.Duration) *scene.Args {
	return &scene.Args{
		Delta:     delta,
		Now:       e.now,
		Input:     &e.input,
		Ctx:       e.ctx,
		TimeScale: e.timeScale,
		IdleFor:   e.idleFor,
	}
}

// Tick advances the device by a wall-clock delta.
func (e *Engine) Tick(delta time.Duration) {
	if delta < 0 {
		delta = 0
	}
	e.now = e.now.Add(delta)
	e.input.Update(e.pending)
	if e.input.AnyPressed() {
		e.idleFor = 0
	} else {
		e.idleFor += delta
	}

	if e.ctx.Alarm.Tick(e.now) {
		e.ctx.Sounds.Push(sound.SongAlarm)
		e.ctx.Emit(e.now, events.EventTypeAlarmRang, "", nil)
		e.logger.Event(string(events.EventTypeAlarmRang), sim.ActorID(e.ctx.Pet.UPID), e.now.String())
	}

	e.manager.Tick(e.args(delta))

	if e.manager.Active() == scene.KindHome {
		e.ctx.ShouldSave = true
	}
}

// RefreshDisplay redraws the active scene and returns the frame. The frame
// is reused by the next call.
func (e *Engine) RefreshDisplay(delta time.Duration) *display.Frame {
	e.manager.Render(&e.frame, e.args(delta))
	return &e.frame
}

// GetSave returns a snapshot when the game is in a state worth saving and
// clears the flag.
func (e *Engine) GetSave(ts timestamp.Timestamp) (save.SaveFile, bool) {
	if !e.ctx.ShouldSave {
		return save.SaveFile{}, false
	}
	e.ctx.ShouldSave = false
	return save.Generate(ts, e.ctx), true
}

// LoadSave replaces the game with s and simulates the time since it was
// written, up to MaxCatchUp. The device lands on the home scene.
func (e *Engine) LoadSave(ts timestamp.Timestamp, s save.SaveFile) {
	ctx := sim.NewGameContext(ts)
	s.Load(ctx)

	away := ts.Sub(s.LastSaved)
	if away > MaxCatchUp {
		e.logger.Warnf("save is %s old, catching up only %s", away, MaxCatchUp)
		away = MaxCatchUp
	}
	steps := catchUp(ctx, ts.Add(-away), away)
	ctx.Emit(ts, events.EventTypeGameLoaded, "", map[string]interface{}{
		"away_seconds": int64(away / time.Second),
		"steps":        steps,
	})

	e.manager.Reset(scene.NewHome(), e.args(0))
	e.ctx = ctx
	e.now = ts
	e.idleFor = 0
	e.logger.Infof("loaded save from %s, simulated %d steps", s.LastSaved, steps)
}

// catchUp simulates away starting at from, one chunk at a time. Each chunk
// sees the wall clock at its end.
func catchUp(ctx *sim.GameContext, from timestamp.Timestamp, away time.Duration) int64 {
	var steps int64
	for done := time.Duration(0); done < away; {
		chunk := min(CatchUpChunk, away-done)
		done += chunk
		steps += sim.TickSim(1, chunk, from.Add(done), ctx)
	}
	return steps
}

// DrainSongs returns songs queued since the last call.
func (e *Engine) DrainSongs() []sound.SongID {
	return e.ctx.Sounds.Drain()
}

// DrainEvents returns events emitted since the last call.
func (e *Engine) DrainEvents() []events.GameEvent {
	return e.ctx.Events.Drain()
}

// SceneSetup implements scene.Observer.
func (e *Engine) SceneSetup(kind scene.Kind, args *scene.Args) {
	e.ctx.Emit(args.Now, events.EventTypeSceneChanged, "", map[string]string{"scene": kind.String()})
	e.logger.Event(string(events.EventTypeSceneChanged), sim.ActorID(e.ctx.Pet.UPID), kind.String())
}

// SceneTeardown implements scene.Observer.
func (e *Engine) SceneTeardown(kind scene.Kind, args *scene.Args) {}

func (e *Engine) String() string {
	return fmt.Sprintf("engine{now=%s scene=%s pet=%s}", e.now, e.manager.Active(), e.ctx.Pet.Name)
}
