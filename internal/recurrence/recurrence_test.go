package recurrence

import (
	"testing"
	"time"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		rule string
		want string
		ok   bool
	}{
		{"RRULE:FREQ=DAILY", "every day", true},
		{"RRULE:FREQ=DAILY;INTERVAL=3", "every 3 days", true},
		{"RRULE:FREQ=WEEKLY;BYDAY=MO,FR", "every week (Mon, Fri)", true},
		{"RRULE:FREQ=MONTHLY;BYMONTHDAY=15,1", "every month on day 1, 15", true},
		{"RRULE:FREQ=MONTHLY;BYDAY=1MO", "every month (1st Mon)", true},
		{"RRULE:FREQ=MONTHLY;INTERVAL=2;BYDAY=-1FR", "every 2 months (last Fri)", true},
		{"RRULE:FREQ=YEARLY;INTERVAL=2", "every 2 years", true},
		{"RRULE:FREQ=HOURLY", "", false},
		{"", "", false},
		{"not a rule", "", false},
	}
	for _, tc := range cases {
		got, ok := Describe(tc.rule, time.UTC)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Describe(%q) = %q, %v; want %q, %v", tc.rule, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	after := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	next, ok, err := NextOccurrence("RRULE:FREQ=WEEKLY", start, after, time.UTC)
	if err != nil || !ok {
		t.Fatalf("expected next occurrence, got ok=%v err=%v", ok, err)
	}
	want := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
	if _, ok, err := NextOccurrence("", start, after, time.UTC); ok || err != nil {
		t.Fatalf("expected no occurrence for empty rule")
	}
	if _, _, err := NextOccurrence("FREQ=SOMETIMES", start, after, time.UTC); err == nil {
		t.Fatalf("expected error for malformed rule")
	}
	ended := "RRULE:FREQ=DAILY;COUNT=2"
	if _, ok, err := NextOccurrence(ended, start, after, time.UTC); ok || err != nil {
		t.Fatalf("expected finished series to have no next occurrence, got ok=%v err=%v", ok, err)
	}
}
