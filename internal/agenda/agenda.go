// Package agenda computes the free time left in a workday around the day's
// calendar events.
package agenda

import (
	"fmt"
	"slices"
	"time"

	"taskdeck/internal/overview"
	"taskdeck/internal/timeparse"
)

type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// DayBounds resolves the configured workday clocks on day.
func DayBounds(day time.Time, startClock, endClock string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := timeparse.ParseClock(startClock, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("workday_start: %w", err)
	}
	end, err := timeparse.ParseClock(endClock, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("workday_end: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("workday_end must be after workday_start")
	}
	return start, end, nil
}

// FreeSlots returns the gaps left in [dayStart, dayEnd] once the timed events
// are placed. All-day events do not block time.
func FreeSlots(events []overview.Event, dayStart, dayEnd time.Time) []Slot {
	busy := busySlots(events, dayStart, dayEnd)
	slices.SortFunc(busy, func(a, b Slot) int { return a.Start.Compare(b.Start) })

	var free []Slot
	cursor := dayStart
	for _, b := range busy {
		if b.Start.After(cursor) {
			free = append(free, Slot{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if dayEnd.After(cursor) {
		free = append(free, Slot{Start: cursor, End: dayEnd})
	}
	return free
}

// busySlots clips timed events to the window and drops those outside it.
func busySlots(events []overview.Event, dayStart, dayEnd time.Time) []Slot {
	loc := dayStart.Location()
	var slots []Slot
	for _, e := range events {
		if e.AllDay || !e.End.After(e.Start) {
			continue
		}
		start, end := e.Start.In(loc), e.End.In(loc)
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if end.After(start) {
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots
}
