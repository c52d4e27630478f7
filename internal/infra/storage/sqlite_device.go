package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteDevice stores the whole device image as one row.
type SQLiteDevice struct {
	db       *sql.DB
	deviceID string
}

func NewSQLiteDevice(db *sql.DB, deviceID string) *SQLiteDevice {
	return &SQLiteDevice{db: db, deviceID: deviceID}
}

func (d *SQLiteDevice) load(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}) ([]byte, error) {
	var image []byte
	err := q.QueryRowContext(ctx, `SELECT image FROM devices WHERE device_id = ?`, d.deviceID).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]byte, DeviceSize), nil
	}
	if err != nil {
		return nil, err
	}
	if len(image) < DeviceSize {
		image = append(image, make([]byte, DeviceSize-len(image))...)
	}
	return image, nil
}

func (d *SQLiteDevice) WriteAt(ctx context.Context, addr int, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin device write: %w", err)
	}
	defer tx.Rollback()

	image, err := d.load(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to load device image: %w", err)
	}
	copy(image[addr:], data)

	query := `
		INSERT INTO devices (device_id, image, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(device_id) DO UPDATE SET
			image=excluded.image,
			last_updated=excluded.last_updated
	`
	if _, err := tx.ExecContext(ctx, query, d.deviceID, image, time.Now()); err != nil {
		return fmt.Errorf("failed to store device image: %w", err)
	}
	return tx.Commit()
}

func (d *SQLiteDevice) ReadAt(ctx context.Context, addr int, buf []byte) error {
	if err := checkRange(addr, len(buf)); err != nil {
		return err
	}
	image, err := d.load(ctx, d.db)
	if err != nil {
		return fmt.Errorf("failed to load device image: %w", err)
	}
	copy(buf, image[addr:])
	return nil
}
