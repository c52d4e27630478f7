// Package geo holds the screen-space vector and rectangle math used for placement.
package geo

import "github.com/MRamiBalles/sdop/internal/domain/rng"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 128
)

type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Rect is a center and a full size.
type Rect struct {
	Center Vec2
	Size   Vec2
}

func (r Rect) Left() float32   { return r.Center.X - r.Size.X/2 }
func (r Rect) Right() float32  { return r.Center.X + r.Size.X/2 }
func (r Rect) Top() float32    { return r.Center.Y - r.Size.Y/2 }
func (r Rect) Bottom() float32 { return r.Center.Y + r.Size.Y/2 }

// Shrink reduces both axes by by, moving every edge inward by by/2.
func (r Rect) Shrink(by float32) Rect {
	size := Vec2{X: r.Size.X - by, Y: r.Size.Y - by}
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	return Rect{Center: r.Center, Size: size}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// RandomPointInside samples uniformly over the rectangle.
func (r Rect) RandomPointInside(src *rng.Rng) Vec2 {
	return Vec2{
		X: r.Left() + src.F32()*r.Size.X,
		Y: r.Top() + src.F32()*r.Size.Y,
	}
}
