// Package recurrence reads the RRULE kept on recurring tasks: a short
// description for the detail pane and the next date the task comes back.
package recurrence

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"
)

var units = map[rrule.Frequency]string{
	rrule.DAILY:   "day",
	rrule.WEEKLY:  "week",
	rrule.MONTHLY: "month",
	rrule.YEARLY:  "year",
}

func parse(rule string, loc *time.Location) (*rrule.ROption, *time.Location, error) {
	if loc == nil {
		loc = time.Local
	}
	option, err := rrule.StrToROptionInLocation(strings.TrimSpace(rule), loc)
	if err != nil {
		return nil, loc, err
	}
	return option, loc, nil
}

// Describe renders rule as "every 2 weeks (Mon, Fri)". It reports false for
// blank, malformed or sub-daily rules.
func Describe(rule string, loc *time.Location) (string, bool) {
	if strings.TrimSpace(rule) == "" {
		return "", false
	}
	option, _, err := parse(rule, loc)
	if err != nil {
		return "", false
	}
	unit, ok := units[option.Freq]
	if !ok {
		return "", false
	}
	text := "every " + unit
	if option.Interval > 1 {
		text = fmt.Sprintf("every %d %ss", option.Interval, unit)
	}
	if option.Freq == rrule.MONTHLY && len(option.Bymonthday) > 0 {
		days := slices.Clone(option.Bymonthday)
		slices.Sort(days)
		labels := make([]string, len(days))
		for i, d := range days {
			labels[i] = strconv.Itoa(d)
		}
		return text + " on day " + strings.Join(labels, ", "), true
	}
	if (option.Freq == rrule.WEEKLY || option.Freq == rrule.MONTHLY) && len(option.Byweekday) > 0 {
		labels := make([]string, len(option.Byweekday))
		for i := range option.Byweekday {
			labels[i] = weekdayLabel(&option.Byweekday[i])
		}
		return text + " (" + strings.Join(labels, ", ") + ")", true
	}
	return text, true
}

// weekdayLabel names a BYDAY entry, with its ordinal when it has one.
func weekdayLabel(day *rrule.Weekday) string {
	// rrule counts weekdays from Monday; time.Weekday from Sunday.
	name := time.Weekday((day.Day() + 1) % 7).String()[:3]
	switch n := day.N(); {
	case n == 0:
		return name
	case n == -1:
		return "last " + name
	default:
		return ordinal(n) + " " + name
	}
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// NextOccurrence returns the first occurrence of rule strictly after after.
// The series starts at start, or at after when start is zero and the rule
// carries no DTSTART. A blank rule has no occurrence.
func NextOccurrence(rule string, start, after time.Time, loc *time.Location) (time.Time, bool, error) {
	if strings.TrimSpace(rule) == "" {
		return time.Time{}, false, nil
	}
	option, loc, err := parse(rule, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse rule %q: %w", rule, err)
	}
	switch {
	case !start.IsZero():
		option.Dtstart = start.In(loc)
	case option.Dtstart.IsZero():
		option.Dtstart = after.In(loc)
	}
	series, err := rrule.NewRRule(*option)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build rule %q: %w", rule, err)
	}
	next := series.After(after.In(loc), false)
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	return next.In(loc), true, nil
}
