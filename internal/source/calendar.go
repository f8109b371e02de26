package source

import (
	"context"
	"sort"
	"time"

	"google.golang.org/api/calendar/v3"

	gcal "taskdeck/internal/google/calendar"
	"taskdeck/internal/logger"
	"taskdeck/internal/overview"
	"taskdeck/internal/timeparse"
)

type CalendarService interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
	ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error)
}

const CalendarListID = "calendar:today"

// Calendar shows today's events from the configured calendars as one list.
type Calendar struct {
	svc       CalendarService
	calendars []string
	location  *time.Location
	now       Clock
}

func NewCalendar(svc CalendarService, calendarIDs []string, loc *time.Location, now Clock) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{svc: svc, calendars: calendarIDs, location: loc, now: now}
}

func (s *Calendar) Name() string { return "Google Calendar" }

func (s *Calendar) Lists(ctx context.Context) ([]overview.List, error) {
	events, err := s.Events(ctx, s.now())
	if err != nil {
		return nil, err
	}
	items := make([]overview.Item, 0, len(events))
	for _, ev := range events {
		items = append(items, overview.EventItem(ev))
	}
	return []overview.List{{
		ID:    CalendarListID,
		Name:  "Today's events",
		Type:  overview.ListTypeCalendar,
		Items: items,
	}}, nil
}

// Events returns the events of day across calendars, all-day events first
// and the rest by start time.
func (s *Calendar) Events(ctx context.Context, day time.Time) ([]overview.Event, error) {
	start, end := timeparse.DayRange(day, s.location)
	names := s.calendarNames(ctx)
	var out []overview.Event
	for _, id := range s.calendars {
		items, err := s.svc.ListEvents(ctx, id, start, end)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item == nil || item.Status == "cancelled" || declined(item) {
				continue
			}
			evStart, evEnd, allDay, ok := gcal.EventTimes(item, s.location)
			if !ok {
				continue
			}
			name := names[id]
			if name == "" {
				name = id
			}
			out = append(out, overview.Event{
				ID:           id + "/" + item.Id,
				Summary:      summary(item),
				Description:  item.Description,
				CalendarName: name,
				Location:     item.Location,
				Start:        evStart,
				End:          evEnd,
				AllDay:       allDay,
				Link:         item.HtmlLink,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AllDay != out[j].AllDay {
			return out[i].AllDay
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// calendarNames is best effort; ids are shown when the list fails.
func (s *Calendar) calendarNames(ctx context.Context) map[string]string {
	names := map[string]string{}
	entries, err := s.svc.ListCalendars(ctx)
	if err != nil {
		logger.WithComponent("source").Debug("calendar names unavailable", "error", err)
		return names
	}
	for _, entry := range entries {
		names[entry.Id] = entry.Summary
		if entry.Primary {
			names["primary"] = entry.Summary
		}
	}
	return names
}

func summary(e *calendar.Event) string {
	if e.Summary == "" {
		return "(no title)"
	}
	return e.Summary
}

func declined(e *calendar.Event) bool {
	for _, a := range e.Attendees {
		if a.Self && a.ResponseStatus == "declined" {
			return true
		}
	}
	return false
}
