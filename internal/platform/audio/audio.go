// Package audio plays the core's songs through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/MRamiBalles/sdop/internal/domain/sound"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

// note renders one note. A zero frequency, or one the rate cannot carry, is
// a rest of the same length.
func note(n sound.Note, rate beep.SampleRate) beep.Streamer {
	length := rate.N(n.Dur)
	if n.Freq <= 0 {
		return generators.Silence(length)
	}
	sine, err := generators.SineTone(rate, n.Freq)
	if err != nil {
		return generators.Silence(length)
	}
	return beep.Take(length, sine)
}

// Song builds a streamer for the notes of id.
func Song(id sound.SongID, rate beep.SampleRate) beep.Streamer {
	notes := sound.Get(id)
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, note(n, rate))
	}
	return &effects.Volume{Streamer: beep.Seq(streamers...), Base: 2, Volume: math.Log2(volume)}
}

// Player mixes songs onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Hosts without audio hardware can skip it;
// Play is then a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues songs on the mixer.
func (p *Player) Play(ids ...sound.SongID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	for _, id := range ids {
		p.mixer.Add(Song(id, sampleRate))
	}
	speaker.Unlock()
}

// Cleanup silences everything.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
