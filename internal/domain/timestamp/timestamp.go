// Package timestamp defines the wall-clock value every time-driven rule is measured against.
// This package is PURE and must NOT import any infrastructure packages.
package timestamp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCalendar is returned when calendar fields do not name a real instant.
var ErrInvalidCalendar = errors.New("invalid calendar fields")

// Timestamp is a naive date and time. It carries no zone; all values live in UTC.
type Timestamp struct {
	t time.Time
}

// FromParts builds a Timestamp and rejects fields that time.Date would normalise.
func FromParts(year, month, day, hour, minute, second, nanos int) (Timestamp, error) {
	if month < 1 || month > 12 || hour < 0 || hour > 23 || minute < 0 || minute > 59 ||
		second < 0 || second > 59 || nanos < 0 || nanos >= int(time.Second) {
		return Timestamp{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d:%02d", ErrInvalidCalendar, year, month, day, hour, minute, second)
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, nanos, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Timestamp{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidCalendar, year, month, day)
	}
	return Timestamp{t: t}, nil
}

// MustParts is FromParts for constants and tests.
func MustParts(year, month, day, hour, minute, second int) Timestamp {
	ts, err := FromParts(year, month, day, hour, minute, second, 0)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromTime takes the wall-clock reading of t in its own location.
func FromTime(t time.Time) Timestamp {
	return Timestamp{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// Time returns the value as a UTC time.Time.
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether ts was never set.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// Add returns ts moved forward by d.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	return Timestamp{t: ts.t.Add(d)}
}

// Sub returns ts - other, or 0 when other is later.
func (ts Timestamp) Sub(other Timestamp) time.Duration {
	d := ts.t.Sub(other.t)
	if d < 0 {
		return 0
	}
	return d
}

func (ts Timestamp) Before(other Timestamp) bool { return ts.t.Before(other.t) }
func (ts Timestamp) Equal(other Timestamp) bool  { return ts.t.Equal(other.t) }

func (ts Timestamp) Year() int             { return ts.t.Year() }
func (ts Timestamp) Month() int            { return int(ts.t.Month()) }
func (ts Timestamp) Day() int              { return ts.t.Day() }
func (ts Timestamp) Hour() int             { return ts.t.Hour() }
func (ts Timestamp) Minute() int           { return ts.t.Minute() }
func (ts Timestamp) Second() int           { return ts.t.Second() }
func (ts Timestamp) Nanosecond() int       { return ts.t.Nanosecond() }
func (ts Timestamp) Weekday() time.Weekday { return ts.t.Weekday() }

// Seed is a stable 64-bit value for seeding a PRNG from this instant.
func (ts Timestamp) Seed() uint64 {
	return uint64(ts.t.UnixNano())
}

// DateSeed only depends on the calendar date, so it is stable for a whole day.
func (ts Timestamp) DateSeed() uint64 {
	year := ts.t.Year()
	return uint64(binary.BigEndian.Uint32([]byte{
		byte(ts.t.Day()),
		byte(ts.t.Month()),
		byte(year >> 8),
		byte(year),
	}))
}

// SameDay reports whether both values fall on the same calendar date.
func (ts Timestamp) SameDay(other Timestamp) bool {
	return ts.t.Year() == other.t.Year() && ts.t.YearDay() == other.t.YearDay()
}

func (ts Timestamp) String() string {
	return ts.t.Format("2006-01-02 15:04:05")
}

// MarshalText renders RFC 3339 without a zone suffix.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.t.Format("2006-01-02T15:04:05.999999999")), nil
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02T15:04:05.999999999", string(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}
	*ts = FromTime(t)
	return nil
}
