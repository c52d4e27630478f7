package storage

import (
	"context"
	"fmt"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
)

// Reconstructor builds the "while you were away" recap from the journal.
type Reconstructor struct {
	eventRepo EventRepository
}

func NewReconstructor(eventRepo EventRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo}
}

// RecapEvent is a simplified event for the recap screen.
type RecapEvent struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Summary   string `json:"summary"`
	Impact    string `json:"impact"` // "POSITIVE", "NEGATIVE", "NEUTRAL"
}

// Recap is the recap plus per-type totals.
type Recap struct {
	Events []RecapEvent   `json:"events"`
	Counts map[string]int `json:"counts"`
}

// GenerateRecap lists the journaled events of a game since the given time.
// Scene changes are navigation noise and are left out.
func (r *Reconstructor) GenerateRecap(ctx context.Context, gameID string, since timestamp.Timestamp) (*Recap, error) {
	all, err := r.eventRepo.GetSince(ctx, gameID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for recap: %w", err)
	}

	recap := &Recap{Events: []RecapEvent{}, Counts: map[string]int{}}
	for _, e := range all {
		if e.EventType == string(events.EventTypeSceneChanged) {
			continue
		}
		recap.Counts[e.EventType]++
		recap.Events = append(recap.Events, RecapEvent{
			Timestamp: timestamp.FromTime(e.Timestamp).String(),
			EventType: e.EventType,
			Summary:   summarizeEvent(e),
			Impact:    determineImpact(e),
		})
	}
	return recap, nil
}

func payloadString(e GameEvent, key string) string {
	if v, ok := e.Payload[key].(string); ok {
		return v
	}
	return "?"
}

func payloadInt(e GameEvent, key string) int {
	if v, ok := e.Payload[key].(float64); ok {
		return int(v)
	}
	return 0
}

func summarizeEvent(e GameEvent) string {
	switch events.EventType(e.EventType) {
	case events.EventTypePetBorn:
		return fmt.Sprintf("%s the %s was born.", payloadString(e, "name"), payloadString(e, "species"))
	case events.EventTypePetDied:
		return "Your pet died of " + payloadString(e, "cause") + "."
	case events.EventTypeEvolveReady:
		return "Your pet is ready to become a " + payloadString(e, "to") + "."
	case events.EventTypeEvolved:
		return fmt.Sprintf("Evolved from %s to %s.", payloadString(e, "from"), payloadString(e, "to"))
	case events.EventTypePoopSpawned:
		return "Your pet pooped."
	case events.EventTypePoopCleared:
		return fmt.Sprintf("Cleaned up %d poops.", payloadInt(e, "count"))
	case events.EventTypeSuiterArrived:
		return payloadString(e, "name") + " came to visit."
	case events.EventTypeSuiterLeft:
		return payloadString(e, "name") + " got tired of waiting."
	case events.EventTypeSuiterAccepted:
		return "You welcomed " + payloadString(e, "name") + "."
	case events.EventTypeEggLaid:
		return "An egg was laid."
	case events.EventTypeEggHatched:
		return "The egg hatched."
	case events.EventTypeFed:
		return "Ate " + payloadString(e, "food") + "."
	case events.EventTypeFishCaught:
		return "Caught something while fishing."
	case events.EventTypeItemBought:
		return "Bought " + payloadString(e, "item") + "."
	case events.EventTypeAlarmRang:
		return "The alarm rang."
	case events.EventTypeGameLoaded:
		return "The device woke up."
	default:
		return "Something happened."
	}
}

func determineImpact(e GameEvent) string {
	switch events.EventType(e.EventType) {
	case events.EventTypePetDied, events.EventTypePoopSpawned, events.EventTypeSuiterLeft:
		return "NEGATIVE"
	case events.EventTypePetBorn, events.EventTypeEvolved, events.EventTypeEggLaid,
		events.EventTypeEggHatched, events.EventTypeFed, events.EventTypeFishCaught,
		events.EventTypePoopCleared:
		return "POSITIVE"
	default:
		return "NEUTRAL"
	}
}
