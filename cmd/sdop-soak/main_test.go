package main

import (
	"context"
	"testing"
	"time"
)

func TestSoakOneDay(t *testing.T) {
	res, err := runSoak(context.Background(), Config{
		Days:      1,
		TimeScale: 3600,
		Step:      100 * time.Millisecond,
		Play:      true,
		Seed:      7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 240 {
		t.Errorf("expected 240 steps, got %d", res.Steps)
	}
	if res.Pet == "" || res.Scene == "" {
		t.Errorf("missing final state %+v", res)
	}
	if res.EventCounts == nil {
		t.Errorf("expected event counts")
	}
}

func TestSoakRejectsBadConfig(t *testing.T) {
	if _, err := runSoak(context.Background(), Config{Days: 0, TimeScale: 1, Step: time.Second}); err == nil {
		t.Fatal("expected error")
	}
}
