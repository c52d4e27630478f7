// Package display is the read-only snapshot scenes draw into and hosts render from.
package display

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/geo"
)

// Sprite is a named image at a position with an animation frame index.
type Sprite struct {
	Name  string   `json:"name"`
	Pos   geo.Vec2 `json:"pos"`
	Frame int      `json:"frame"`
}

// Text is a line of text anchored at its top-left corner.
type Text struct {
	Pos  geo.Vec2 `json:"pos"`
	Body string   `json:"body"`
}

// Frame is everything a host needs to draw one screen.
type Frame struct {
	Scene    string   `json:"scene"`
	Sprites  []Sprite `json:"sprites"`
	Texts    []Text   `json:"texts"`
	Inverted bool     `json:"inverted"`
}

// Reset empties the frame, keeping its buffers.
func (f *Frame) Reset(scene string) {
	f.Scene = scene
	f.Sprites = f.Sprites[:0]
	f.Texts = f.Texts[:0]
	f.Inverted = false
}

func (f *Frame) Sprite(name string, pos geo.Vec2, frame int) {
	f.Sprites = append(f.Sprites, Sprite{Name: name, Pos: pos, Frame: frame})
}

func (f *Frame) Text(x, y float32, body string) {
	f.Texts = append(f.Texts, Text{Pos: geo.Vec2{X: x, Y: y}, Body: body})
}

// Clone returns a copy that shares no buffers with f.
func (f *Frame) Clone() Frame {
	out := *f
	out.Sprites = append([]Sprite(nil), f.Sprites...)
	out.Texts = append([]Text(nil), f.Texts...)
	return out
}

// Anime cycles through a fixed number of frames.
type Anime struct {
	Frames    int
	FrameTime time.Duration
	elapsed   time.Duration
}

func NewAnime(frames int, frameTime time.Duration) Anime {
	return Anime{Frames: frames, FrameTime: frameTime}
}

func (a *Anime) Tick(delta time.Duration) {
	a.elapsed += delta
	if span := time.Duration(a.Frames) * a.FrameTime; span > 0 {
		a.elapsed %= span
	}
}

func (a *Anime) Current() int {
	if a.Frames <= 1 || a.FrameTime <= 0 {
		return 0
	}
	return int(a.elapsed / a.FrameTime)
}
