package timestamp

import (
	"errors"
	"testing"
	"time"
)

func TestFromPartsEquality(t *testing.T) {
	a := MustParts(2025, 3, 14, 9, 26, 53)
	b := MustParts(2025, 3, 14, 9, 26, 53)
	if a != b {
		t.Errorf("expected identical calendar fields to compare equal")
	}
	if a.Seed() != b.Seed() {
		t.Errorf("expected identical seeds")
	}
}

func TestFromPartsRejectsInvalid(t *testing.T) {
	cases := []struct {
		name                      string
		y, mo, d, h, mi, s, nanos int
	}{
		{"month 13", 2025, 13, 1, 0, 0, 0, 0},
		{"feb 30", 2025, 2, 30, 0, 0, 0, 0},
		{"hour 24", 2025, 1, 1, 24, 0, 0, 0},
		{"negative nanos", 2025, 1, 1, 0, 0, 0, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromParts(tc.y, tc.mo, tc.d, tc.h, tc.mi, tc.s, tc.nanos)
			if !errors.Is(err, ErrInvalidCalendar) {
				t.Errorf("expected ErrInvalidCalendar, got %v", err)
			}
		})
	}
}

func TestSubNeverNegative(t *testing.T) {
	early := MustParts(2025, 1, 1, 0, 0, 0)
	late := early.Add(90 * time.Second)

	if got := late.Sub(early); got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}
	if got := early.Sub(late); got != 0 {
		t.Errorf("expected 0 when subtracting a later value, got %v", got)
	}
}

func TestFromTimeDropsZone(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	ts := FromTime(time.Date(2025, 6, 1, 23, 30, 0, 0, loc))
	if ts.Hour() != 23 || ts.Day() != 1 {
		t.Errorf("expected wall clock 23:30 on day 1, got %s", ts)
	}
	if ts != MustParts(2025, 6, 1, 23, 30, 0) {
		t.Errorf("expected FromTime to equal FromParts for same wall clock")
	}
}

func TestDateSeedStableAcrossDay(t *testing.T) {
	morning := MustParts(2025, 7, 4, 6, 0, 0)
	night := MustParts(2025, 7, 4, 23, 59, 59)
	next := MustParts(2025, 7, 5, 0, 0, 0)

	if morning.DateSeed() != night.DateSeed() {
		t.Errorf("expected same date seed within a day")
	}
	if morning.DateSeed() == next.DateSeed() {
		t.Errorf("expected different date seed on the next day")
	}
}

func TestTextRoundTrip(t *testing.T) {
	ts, _ := FromParts(2024, 2, 29, 12, 1, 2, 345)
	b, err := ts.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Timestamp
	if err := back.UnmarshalText(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != ts {
		t.Errorf("expected %s, got %s", ts, back)
	}
}
