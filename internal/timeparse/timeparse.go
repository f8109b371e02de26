// Package timeparse turns user input such as "tomorrow" or "09:30" into
// times in the configured location.
package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// Layouts tried before natural language.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "Jan 2 2006", "2 Jan 2006"}

// LoadLocation resolves a config timezone; "" and "local" mean time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate returns midnight of the named day in loc. Blank input yields the
// zero time.
func ParseDate(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}
	parsed, err := naturaldate.Parse(dateStr, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}
	start, _ := DayRange(parsed, loc)
	return start, nil
}

// ParseClock places an "HH:MM" clock on base's date.
func ParseClock(clock string, base time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock %q", clock)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// DayRange returns midnight of day and of the following day in loc.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
