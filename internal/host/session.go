// Package host runs engines for the executables: a Session is the one
// persistent device behind a server or terminal, and a Registry holds
// throwaway devices addressed by opaque handles.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/engine"
	"github.com/MRamiBalles/sdop/internal/events"
	"github.com/MRamiBalles/sdop/internal/infra/storage"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/network"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/platform/metrics"
	"github.com/MRamiBalles/sdop/internal/save"
	"github.com/MRamiBalles/sdop/internal/scene"
)

// MaxTimeScale bounds the sim speed a client may ask for.
const MaxTimeScale = 10000

var (
	ErrUnknownAction = errors.New("host: unknown action")
	ErrBadTimeScale  = errors.New("host: time scale out of range")
	ErrNoJournal     = errors.New("host: no event journal configured")
)

// Broadcaster receives everything a step produces. *network.Hub satisfies it.
type Broadcaster interface {
	BroadcastFrame(f display.Frame)
	BroadcastEvents(evs []events.GameEvent)
	BroadcastSongs(songs []sound.SongID)
}

// SongPlayer plays queued songs. *audio.Player satisfies it.
type SongPlayer interface {
	Play(ids ...sound.SongID)
}

// Options wires a Session. Only Device is required.
type Options struct {
	GameID       string
	Device       storage.Device
	Journal      storage.EventRepository
	Hub          Broadcaster
	Player       SongPlayer
	Clock        clock.Clock
	SaveInterval time.Duration
	TimeScale    float32
	Logger       *logger.Logger
}

// Session is one persistent device.
type Session struct {
	mu           sync.Mutex
	gameID       string
	engine       *engine.Engine
	device       storage.Device
	journal      storage.EventRepository
	hub          Broadcaster
	player       SongPlayer
	held         input.States
	pressed      input.States
	frame        display.Frame
	saveInterval time.Duration
	sinceSave    time.Duration
	logger       *logger.Logger
}

// Boot loads the save on the device, or starts a blank game when there is
// none or it is corrupt. Device read failures are returned.
func Boot(ctx context.Context, opts Options) (*Session, error) {
	if opts.Device == nil {
		return nil, errors.New("host: no storage device")
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.GameID == "" {
		opts.GameID = "default"
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = 30 * time.Second
	}

	now := opts.Clock.Now()
	s := &Session{
		gameID:       opts.GameID,
		device:       opts.Device,
		journal:      opts.Journal,
		hub:          opts.Hub,
		player:       opts.Player,
		saveInterval: opts.SaveInterval,
		logger:       opts.Logger,
	}

	sf, err := storage.ReadSave(ctx, opts.Device)
	metrics.Get().RecordLoad(err)
	var de *save.DecodeError
	switch {
	case err == nil:
		s.engine = engine.NewFromSave(now, sf, opts.Logger)
		opts.Logger.Infof("Loaded save for %s from %s", sf.Pet.Name, sf.LastSaved)
	case errors.As(err, &de):
		opts.Logger.Warn("No usable save, starting a blank game: " + err.Error())
		s.engine = engine.NewBlank(now, opts.Logger)
	default:
		return nil, fmt.Errorf("failed to boot session: %w", err)
	}

	if opts.TimeScale > 0 {
		s.engine.SetSimTimeScale(opts.TimeScale)
	}
	return s, nil
}

func (s *Session) GameID() string { return s.gameID }

// Step advances the device by delta, then fans the results out to the
// journal, hub and player. A due save is written; its error is returned
// after the step has otherwise completed.
func (s *Session) Step(ctx context.Context, delta time.Duration) error {
	start := time.Now()

	s.mu.Lock()
	states := s.held
	for b := range states {
		states[b] = states[b] || s.pressed[b]
	}
	s.pressed = input.States{}
	s.engine.UpdateInput(states)
	s.engine.Tick(delta)
	s.frame = s.engine.RefreshDisplay(delta).Clone()
	frame := s.frame
	evs := s.engine.DrainEvents()
	songs := s.engine.DrainSongs()

	var pending *save.SaveFile
	s.sinceSave += delta
	if s.sinceSave >= s.saveInterval {
		if sf, ok := s.engine.GetSave(s.engine.Now()); ok {
			pending = &sf
			s.sinceSave = 0
		}
	}
	s.mu.Unlock()

	m := metrics.Get()
	m.RecordTick(time.Since(start))
	m.RecordEvents(len(evs))

	if s.hub != nil {
		s.hub.BroadcastFrame(frame)
		s.hub.BroadcastEvents(evs)
		s.hub.BroadcastSongs(songs)
	}
	if s.player != nil && len(songs) > 0 {
		s.player.Play(songs...)
	}

	var errs []error
	if s.journal != nil && len(evs) > 0 {
		if err := s.journal.Append(ctx, s.gameID, evs); err != nil {
			errs = append(errs, fmt.Errorf("failed to journal events: %w", err))
		}
	}
	if pending != nil {
		if err := s.write(ctx, *pending); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes the current state regardless of the active scene.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	sf := save.Generate(s.engine.Now(), s.engine.Context())
	s.sinceSave = 0
	s.mu.Unlock()
	return s.write(ctx, sf)
}

func (s *Session) write(ctx context.Context, sf save.SaveFile) error {
	start := time.Now()
	err := storage.WriteSave(ctx, s.device, sf)
	metrics.Get().RecordSave(time.Since(start), save.Size, err)
	if err != nil {
		return err
	}
	s.logger.Event("SAVE_WRITTEN", s.gameID, sf.LastSaved.String())
	return nil
}

// Run steps the session at rate until ctx is done, then writes a final save.
func (s *Session) Run(ctx context.Context, rate time.Duration) {
	t := engine.NewTicker(rate, func(delta time.Duration) {
		if err := s.Step(ctx, delta); err != nil {
			s.logger.Error("Step failed: " + err.Error())
		}
	}, s.logger)
	t.Start(ctx)

	// ctx is already done; give the final save its own deadline.
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Save(saveCtx); err != nil {
		s.logger.Error("Final save failed: " + err.Error())
	}
}

// Press holds b for the next step only.
func (s *Session) Press(b input.Button) {
	s.mu.Lock()
	s.pressed[b] = true
	s.mu.Unlock()
}

// SetHeld holds or releases b until changed again.
func (s *Session) SetHeld(b input.Button, down bool) {
	s.mu.Lock()
	s.held[b] = down
	s.mu.Unlock()
}

func (s *Session) SetTimeScale(scale float32) error {
	if scale < 0 || scale > MaxTimeScale {
		return fmt.Errorf("%w: %v", ErrBadTimeScale, scale)
	}
	s.mu.Lock()
	s.engine.SetSimTimeScale(scale)
	s.mu.Unlock()
	return nil
}

func (s *Session) TimeScale() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SimTimeScale()
}

// HandleAction implements network.ActionHandler.
func (s *Session) HandleAction(action network.PlayerAction) error {
	switch action.Type {
	case network.ActionTimeScale:
		return s.SetTimeScale(action.Scale)
	case network.ActionPress, network.ActionHold, network.ActionRelease:
		b, ok := input.ParseButton(action.Button)
		if !ok {
			return fmt.Errorf("%w: button %q", ErrUnknownAction, action.Button)
		}
		switch action.Type {
		case network.ActionPress:
			s.Press(b)
		case network.ActionHold:
			s.SetHeld(b, true)
		default:
			s.SetHeld(b, false)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
}

// Frame returns the frame drawn by the last step.
func (s *Session) Frame() display.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.Clone()
}

// State is a read-only view of the device for the API.
type State struct {
	GameID    string              `json:"game_id"`
	Scene     string              `json:"scene"`
	Now       timestamp.Timestamp `json:"now"`
	TimeScale float32             `json:"time_scale"`
	Game      save.SaveFile       `json:"game"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		GameID:    s.gameID,
		Scene:     s.engine.ActiveScene().String(),
		Now:       s.engine.Now(),
		TimeScale: s.engine.SimTimeScale(),
		Game:      save.Generate(s.engine.Now(), s.engine.Context()),
	}
}

// ActiveScene reports the scene the device is showing.
func (s *Session) ActiveScene() scene.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ActiveScene()
}

// Recap summarises journaled events since the given time.
func (s *Session) Recap(ctx context.Context, since timestamp.Timestamp) (*storage.Recap, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return storage.NewReconstructor(s.journal).GenerateRecap(ctx, s.gameID, since)
}
