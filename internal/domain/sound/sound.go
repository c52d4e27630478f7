// Package sound defines the short melodies the core asks hosts to play.
package sound

import "time"

// Note is a tone. A zero Freq is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// SongID names a melody.
type SongID uint8

const (
	SongPooped SongID = iota
	SongAlarm
	SongEvolve
	SongDeath
	SongFanfare
	SongHatch
)

var songNames = map[SongID]string{
	SongPooped:  "POOPED",
	SongAlarm:   "ALARM",
	SongEvolve:  "EVOLVE",
	SongDeath:   "DEATH",
	SongFanfare: "FANFARE",
	SongHatch:   "HATCH",
}

func (id SongID) String() string {
	if name, ok := songNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

const (
	c5 = 523.25
	e5 = 659.25
	g5 = 783.99
	a4 = 440.00
	f4 = 349.23
	c6 = 1046.50
)

func n(freq float64, ms int) Note {
	return Note{Freq: freq, Dur: time.Duration(ms) * time.Millisecond}
}

var songs = map[SongID][]Note{
	SongPooped:  {n(f4, 80), n(0, 40), n(f4, 80)},
	SongAlarm:   {n(c6, 150), n(0, 100), n(c6, 150), n(0, 100), n(c6, 150)},
	SongEvolve:  {n(c5, 120), n(e5, 120), n(g5, 120), n(c6, 240)},
	SongDeath:   {n(g5, 200), n(e5, 200), n(c5, 200), n(a4, 400)},
	SongFanfare: {n(c5, 100), n(c5, 100), n(g5, 300)},
	SongHatch:   {n(e5, 80), n(g5, 80), n(c6, 160)},
}

// Get returns the notes of id.
func Get(id SongID) []Note {
	return songs[id]
}

// Queue is a bounded list of songs waiting for a host to play them.
type Queue struct {
	pending []SongID
}

const queueLimit = 8

// Push queues a song, dropping the oldest one when the queue is full.
func (q *Queue) Push(id SongID) {
	if len(q.pending) >= queueLimit {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, id)
}

// Drain returns and clears the queued songs.
func (q *Queue) Drain() []SongID {
	out := q.pending
	q.pending = nil
	return out
}
