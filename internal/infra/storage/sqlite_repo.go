package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
	"github.com/MRamiBalles/sdop/internal/events"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// Append writes evs in one transaction. Engine ids restart with every
// session, so rows get their own uuid.
func (r *SQLiteEventRepository) Append(ctx context.Context, gameID string, evs []events.GameEvent) error {
	if len(evs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (id, game_id, timestamp, event_type, actor_id, target_id, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range evs {
		row, payload := FromDomain(gameID, e)
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		_, err = tx.ExecContext(ctx, query,
			uuid.NewString(), row.GameID, row.Timestamp.UnixNano(), row.EventType,
			row.ActorID, row.TargetID, string(payloadBytes),
		)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameEvent
	for rows.Next() {
		var e GameEvent
		var nanos int64
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.GameID, &nanos, &e.EventType, &e.ActorID,
			&e.TargetID, &payloadStr,
		)
		if err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, nanos).UTC()
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const selectEvents = `SELECT id, game_id, timestamp, event_type, actor_id, target_id, payload FROM events`

func (r *SQLiteEventRepository) GetByGameID(ctx context.Context, gameID string) ([]GameEvent, error) {
	query := selectEvents + ` WHERE game_id = ? ORDER BY timestamp ASC, rowid ASC`
	return r.getMany(ctx, query, gameID)
}

func (r *SQLiteEventRepository) GetSince(ctx context.Context, gameID string, since timestamp.Timestamp) ([]GameEvent, error) {
	query := selectEvents + ` WHERE game_id = ? AND timestamp >= ? ORDER BY timestamp ASC, rowid ASC`
	return r.getMany(ctx, query, gameID, since.Time().UnixNano())
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, gameID string, eventType string) ([]GameEvent, error) {
	query := selectEvents + ` WHERE game_id = ? AND event_type = ? ORDER BY timestamp ASC, rowid ASC`
	return r.getMany(ctx, query, gameID, eventType)
}
