// Package alarm implements the wake-up alarm.
package alarm

import "github.com/MRamiBalles/sdop/internal/domain/timestamp"

// Config is the persisted part of the alarm.
type Config struct {
	Enabled bool  `json:"enabled"`
	Hour    uint8 `json:"hour"`
	Minute  uint8 `json:"minute"`
}

func (c Config) Valid() bool {
	return c.Hour < 24 && c.Minute < 60
}

// State is the runtime alarm.
type State struct {
	Config  Config
	Ringing bool
	fired   timestamp.Timestamp
}

func NewState(cfg Config) State {
	return State{Config: cfg}
}

// Tick starts ringing at the configured minute, once per day. It reports
// whether the alarm started ringing on this call.
func (s *State) Tick(now timestamp.Timestamp) bool {
	if !s.Config.Enabled || s.Ringing {
		return false
	}
	if now.Hour() != int(s.Config.Hour) || now.Minute() != int(s.Config.Minute) {
		return false
	}
	if !s.fired.IsZero() && s.fired.SameDay(now) {
		return false
	}
	s.fired = now
	s.Ringing = true
	return true
}

func (s *State) Dismiss() {
	s.Ringing = false
}
