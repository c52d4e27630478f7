package events

import (
	"testing"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

func TestAppendAssignsIDsAndDrains(t *testing.T) {
	el := NewEventLog(0)
	ts := timestamp.MustParts(2025, 1, 1, 0, 0, 0)
	el.Append(GameEvent{Timestamp: ts, Type: EventTypePoopSpawned})
	el.Append(GameEvent{Timestamp: ts, Type: EventTypeFed})

	if got := el.GetByType(EventTypeFed); len(got) != 1 {
		t.Fatalf("expected one FED event, got %d", len(got))
	}

	drained := el.Drain()
	if len(drained) != 2 || drained[0].ID != "1" || drained[1].ID != "2" {
		t.Fatalf("unexpected drain %+v", drained)
	}
	if len(el.Replay()) != 0 {
		t.Errorf("expected empty log after drain")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	el := NewEventLog(2)
	for i := 0; i < 5; i++ {
		el.Append(GameEvent{Type: EventTypePoopSpawned})
	}
	got := el.Replay()
	if len(got) != 2 || got[0].ID != "4" {
		t.Errorf("expected last two events, got %+v", got)
	}
	if el.Dropped() != 3 {
		t.Errorf("expected 3 dropped, got %d", el.Dropped())
	}
}

func TestNilLogIgnoresAppend(t *testing.T) {
	var el *EventLog
	el.Append(GameEvent{Type: EventTypeFed})
}
