package agenda

import (
	"testing"
	"time"

	"taskdeck/internal/overview"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 4, hour, min, 0, 0, time.UTC)
}

func TestFreeSlots(t *testing.T) {
	dayStart, dayEnd, err := DayBounds(at(0, 0), "09:00", "18:00", time.UTC)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	events := []overview.Event{
		{ID: "b", Start: at(11, 30), End: at(12, 30)},
		{ID: "a", Start: at(10, 0), End: at(11, 0)},
		{ID: "c", Start: at(12, 0), End: at(13, 0)},
		{ID: "holiday", AllDay: true, Start: at(0, 0), End: at(0, 0).Add(24 * time.Hour)},
		{ID: "late", Start: at(17, 30), End: at(19, 0)},
	}
	got := FreeSlots(events, dayStart, dayEnd)
	want := []Slot{
		{at(9, 0), at(10, 0)},
		{at(11, 0), at(11, 30)},
		{at(13, 0), at(17, 30)},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %v", len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFreeSlotsWithoutEvents(t *testing.T) {
	got := FreeSlots(nil, at(9, 0), at(18, 0))
	if len(got) != 1 || got[0].Duration() != 9*time.Hour {
		t.Fatalf("expected whole day free, got %v", got)
	}
}

func TestDayBoundsRejectsInvertedDay(t *testing.T) {
	if _, _, err := DayBounds(at(0, 0), "18:00", "09:00", time.UTC); err == nil {
		t.Fatalf("expected error")
	}
}
