package main

import (
	"testing"

	"github.com/MRamiBalles/sdop/internal/network"
)

func TestNextActionReleasesHeldButton(t *testing.T) {
	held := ""
	a := nextAction(&held, 1)
	if a.Type != network.ActionHold || held != a.Button {
		t.Fatalf("got %+v held=%q, want a hold", a, held)
	}

	b := nextAction(&held, 1)
	if b.Type != network.ActionRelease || b.Button != a.Button {
		t.Errorf("got %+v, want release of %s", b, a.Button)
	}
	if held != "" {
		t.Errorf("held = %q after release", held)
	}
}

func TestNextActionPressesWithoutHoldOdds(t *testing.T) {
	held := ""
	for i := 0; i < 50; i++ {
		if a := nextAction(&held, 0); a.Type != network.ActionPress {
			t.Fatalf("action %d = %+v, want press", i, a)
		}
	}
}

func TestReportFailsOnDroppedViewer(t *testing.T) {
	r := report{viewers: []viewer{{frames: 10}, {dropped: true}}, elapsed: 1e9}
	if r.print() {
		t.Error("report with a dropped viewer should fail")
	}
	r.viewers[1].dropped = false
	if !r.print() {
		t.Error("clean report should pass")
	}
}
