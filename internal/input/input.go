// Package input tracks the three device buttons and derives press/release edges.
package input

// Button is one of the three device buttons.
type Button uint8

const (
	Left Button = iota
	Middle
	Right

	buttonCount
)

func (b Button) String() string {
	switch b {
	case Left:
		return "LEFT"
	case Middle:
		return "MIDDLE"
	case Right:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// ParseButton accepts the names produced by String, case-sensitive.
func ParseButton(s string) (Button, bool) {
	for b := Left; b < buttonCount; b++ {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

// States is one snapshot of which buttons are held down.
type States [buttonCount]bool

// Input compares the current snapshot against the previous one.
type Input struct {
	current  States
	previous States
}

// Update shifts the current snapshot to previous and stores next.
func (in *Input) Update(next States) {
	in.previous = in.current
	in.current = next
}

func (in *Input) Down(b Button) bool {
	return b < buttonCount && in.current[b]
}

// Pressed reports a button that went down since the last snapshot.
func (in *Input) Pressed(b Button) bool {
	return b < buttonCount && in.current[b] && !in.previous[b]
}

// Released reports a button that went up since the last snapshot.
func (in *Input) Released(b Button) bool {
	return b < buttonCount && !in.current[b] && in.previous[b]
}

func (in *Input) AnyPressed() bool {
	for b := Left; b < buttonCount; b++ {
		if in.Pressed(b) {
			return true
		}
	}
	return false
}

func (in *Input) Current() States {
	return in.current
}
