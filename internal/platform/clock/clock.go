// Package clock lets hosts swap wall-clock time for a controllable one in tests.
package clock

import (
	"sync"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// Clock reads the current local time.
type Clock interface {
	Now() timestamp.Timestamp
}

// Real reads the system clock in local time.
type Real struct{}

func (Real) Now() timestamp.Timestamp {
	return timestamp.FromTime(time.Now())
}

// Fake is a clock that only moves when told to.
type Fake struct {
	mu  sync.Mutex
	now timestamp.Timestamp
}

func NewFake(now timestamp.Timestamp) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() timestamp.Timestamp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now timestamp.Timestamp) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
