// Package storage provides the persistence layer for the hosts: block devices
// holding the save image, and the event journal behind the recap.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
	"github.com/MRamiBalles/sdop/internal/save"
)

// DeviceSize is the addressable size of every device.
const DeviceSize = 0x10000

// SaveAddr is where the save image starts on a device.
const SaveAddr = 0x100

// ErrOutOfRange is returned for accesses past DeviceSize.
var ErrOutOfRange = errors.New("storage: address out of range")

// Device is byte-addressable persistent memory.
type Device interface {
	WriteAt(ctx context.Context, addr int, data []byte) error
	ReadAt(ctx context.Context, addr int, buf []byte) error
}

func checkRange(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > DeviceSize {
		return fmt.Errorf("%w: [%#x, %#x)", ErrOutOfRange, addr, addr+n)
	}
	return nil
}

// WriteSave encodes s and writes it at SaveAddr.
func WriteSave(ctx context.Context, dev Device, s save.SaveFile) error {
	img, err := save.Encode(s)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if err := dev.WriteAt(ctx, SaveAddr, img[:]); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// ReadSave reads and decodes the image at SaveAddr. A blank or corrupt device
// yields a *save.DecodeError.
func ReadSave(ctx context.Context, dev Device) (save.SaveFile, error) {
	buf := make([]byte, save.Size)
	if err := dev.ReadAt(ctx, SaveAddr, buf); err != nil {
		return save.SaveFile{}, fmt.Errorf("failed to read save: %w", err)
	}
	s, err := save.Decode(buf)
	if err != nil {
		return save.SaveFile{}, fmt.Errorf("failed to decode save: %w", err)
	}
	return s, nil
}

// GameEvent mirrors the domain event structure for persistence.
type GameEvent struct {
	ID        string                 `json:"id"`
	GameID    string                 `json:"game_id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType string                 `json:"event_type"`
	ActorID   string                 `json:"actor_id"`
	TargetID  string                 `json:"target_id"`
	Payload   map[string]interface{} `json:"payload"`
}

// FromDomain converts an engine event for storage. Payload is kept as-is and
// serialized by the repository.
func FromDomain(gameID string, e events.GameEvent) (GameEvent, interface{}) {
	return GameEvent{
		ID:        e.ID,
		GameID:    gameID,
		Timestamp: e.Timestamp.Time(),
		EventType: string(e.Type),
		ActorID:   e.ActorID,
		TargetID:  e.TargetID,
	}, e.Payload
}

// EventRepository defines the interface for the event journal.
type EventRepository interface {
	// Append stores events drained from one game, in order.
	Append(ctx context.Context, gameID string, evs []events.GameEvent) error

	// GetByGameID retrieves all events of a game in time order.
	GetByGameID(ctx context.Context, gameID string) ([]GameEvent, error)

	// GetSince retrieves events at or after since.
	GetSince(ctx context.Context, gameID string, since timestamp.Timestamp) ([]GameEvent, error)

	// GetByEventType retrieves all events of one type.
	GetByEventType(ctx context.Context, gameID string, eventType string) ([]GameEvent, error)
}
