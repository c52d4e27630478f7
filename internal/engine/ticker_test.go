package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/platform/logger"
)

func TestTickerStopsWithContext(t *testing.T) {
	var mu sync.Mutex
	var total time.Duration
	calls := 0

	tk := NewTicker(5*time.Millisecond, func(delta time.Duration) {
		mu.Lock()
		total += delta
		calls++
		mu.Unlock()
	}, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		tk.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Fatal("expected at least one tick")
	}
	if total <= 0 {
		t.Errorf("expected positive elapsed time, got %s", total)
	}
}

func TestTickerStop(t *testing.T) {
	tk := NewTicker(0, func(time.Duration) {}, logger.Discard())
	if tk.rate != DefaultTickRate {
		t.Errorf("expected default rate, got %s", tk.rate)
	}
	done := make(chan struct{})
	go func() {
		tk.Start(context.Background())
		close(done)
	}()
	tk.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}
