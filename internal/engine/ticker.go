package engine

import (
	"context"
	"time"

	"github.com/MRamiBalles/sdop/internal/platform/logger"
)

// DefaultTickRate is how often hosts step the engine.
const DefaultTickRate = 100 * time.Millisecond

// Ticker calls onTick at a fixed rate with the wall-clock time since the
// previous call.
type Ticker struct {
	rate     time.Duration
	onTick   func(delta time.Duration)
	logger   *logger.Logger
	stopChan chan struct{}
	now      func() time.Time
}

// NewTicker creates a ticker. A non-positive rate uses DefaultTickRate.
func NewTicker(rate time.Duration, onTick func(delta time.Duration), log *logger.Logger) *Ticker {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Ticker{
		rate:     rate,
		onTick:   onTick,
		logger:   log,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// Start runs the loop until ctx is done or Stop is called. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Infof("Engine ticker started at %s", t.rate)

	ticker := time.NewTicker(t.rate)
	defer ticker.Stop()

	last := t.now()
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Engine ticker stopped by context.")
			return
		case <-t.stopChan:
			t.logger.Info("Engine ticker stopped manually.")
			return
		case <-ticker.C:
			now := t.now()
			t.onTick(now.Sub(last))
			last = now
		}
	}
}

// Stop ends the loop.
func (t *Ticker) Stop() {
	close(t.stopChan)
}
