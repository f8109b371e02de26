package timeparse

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in, now, time.UTC)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	got, err := ParseClock("09:30", base, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Fatalf("unexpected time %v", got)
	}
	for _, bad := range []string{"9", "25:00", "10:75", "ab:cd"} {
		if _, err := ParseClock(bad, base, time.UTC); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(time.Date(2024, 3, 4, 15, 4, 0, 0, time.UTC), time.UTC)
	if !start.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %v - %v", start, end)
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("local")
	if err != nil || loc != time.Local {
		t.Fatalf("expected local, got %v (%v)", loc, err)
	}
	if _, err := LoadLocation("Nowhere/Town"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
