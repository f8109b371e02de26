package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Client struct {
	svc *calendar.Service
}

func New(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// ListEvents returns the single (expanded) events overlapping [timeMin,
// timeMax), ordered by start time.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("calendarID is required")
	}
	var out []*calendar.Event
	call := c.svc.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime")
	err := call.Pages(ctx, func(resp *calendar.Events) error {
		out = append(out, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events of %s: %w", calendarID, err)
	}
	return out, nil
}

func (c *Client) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	var out []*calendar.CalendarListEntry
	err := c.svc.CalendarList.List().Pages(ctx, func(resp *calendar.CalendarList) error {
		out = append(out, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	return out, nil
}

// EventTimes converts the API's start and end into times in loc. All-day
// events use midnight of their dates.
func EventTimes(e *calendar.Event, loc *time.Location) (start, end time.Time, allDay bool, ok bool) {
	if e.Start == nil || e.End == nil {
		return time.Time{}, time.Time{}, false, false
	}
	if e.Start.DateTime != "" && e.End.DateTime != "" {
		s, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, false
		}
		en, err := time.Parse(time.RFC3339, e.End.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, false
		}
		return s.In(loc), en.In(loc), false, true
	}
	if e.Start.Date != "" && e.End.Date != "" {
		s, err := time.ParseInLocation("2006-01-02", e.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, false
		}
		en, err := time.ParseInLocation("2006-01-02", e.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, false
		}
		return s, en, true, true
	}
	return time.Time{}, time.Time{}, false, false
}
