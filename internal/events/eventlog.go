// Package events records notable things that happen to the pet so hosts can
// stream them, journal them and build a recap.
package events

import (
	"strconv"
	"sync"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypePetBorn        EventType = "PET_BORN"
	EventTypePetDied        EventType = "PET_DIED"
	EventTypeEvolveReady    EventType = "EVOLVE_READY"
	EventTypeEvolved        EventType = "EVOLVED"
	EventTypePoopSpawned    EventType = "POOP_SPAWNED"
	EventTypePoopCleared    EventType = "POOP_CLEARED"
	EventTypeSuiterArrived  EventType = "SUITER_ARRIVED"
	EventTypeSuiterLeft     EventType = "SUITER_LEFT"
	EventTypeSuiterAccepted EventType = "SUITER_ACCEPTED"
	EventTypeEggLaid        EventType = "EGG_LAID"
	EventTypeEggHatched     EventType = "EGG_HATCHED"
	EventTypeFed            EventType = "FED"
	EventTypeFishCaught     EventType = "FISH_CAUGHT"
	EventTypeItemBought     EventType = "ITEM_BOUGHT"
	EventTypeAlarmRang      EventType = "ALARM_RANG"
	EventTypeSceneChanged   EventType = "SCENE_CHANGED"
	EventTypeGameLoaded     EventType = "GAME_LOADED"
)

// GameEvent represents an immutable record of something that happened.
type GameEvent struct {
	ID        string              `json:"id"`
	Timestamp timestamp.Timestamp `json:"timestamp"`
	Type      EventType           `json:"type"`
	ActorID   string              `json:"actor_id"`  // pet the event is about
	TargetID  string              `json:"target_id"` // other party, optional
	Payload   interface{}         `json:"payload"`
}

// DefaultCapacity bounds how many undrained events are kept.
const DefaultCapacity = 512

// EventLog is an in-memory bounded log. Appending never blocks on I/O; hosts
// drain it outside the simulation step.
type EventLog struct {
	mu       sync.RWMutex
	events   []GameEvent
	capacity int
	seq      uint64
	dropped  uint64
}

// NewEventLog creates a log holding at most capacity undrained events.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventLog{
		events:   make([]GameEvent, 0, 16),
		capacity: capacity,
	}
}

// Append assigns an ID and stores the event, evicting the oldest when full.
func (el *EventLog) Append(event GameEvent) {
	if el == nil {
		return
	}
	el.mu.Lock()
	defer el.mu.Unlock()

	el.seq++
	if event.ID == "" {
		event.ID = strconv.FormatUint(el.seq, 10)
	}
	if len(el.events) >= el.capacity {
		el.events = el.events[1:]
		el.dropped++
	}
	el.events = append(el.events, event)
}

// Drain returns all stored events and empties the log.
func (el *EventLog) Drain() []GameEvent {
	el.mu.Lock()
	defer el.mu.Unlock()
	out := el.events
	el.events = make([]GameEvent, 0, 16)
	return out
}

// Replay returns a copy of the stored events without draining them.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return append([]GameEvent(nil), el.events...)
}

// GetByType returns stored events of one type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Dropped reports how many events were evicted before being drained.
func (el *EventLog) Dropped() uint64 {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.dropped
}
