package cli

import (
	"strings"
	"testing"
	"time"

	"taskdeck/internal/accounts"
	"taskdeck/internal/agenda"
	"taskdeck/internal/overview"
)

func TestMoveEntry(t *testing.T) {
	entries := []listEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	moved, index := moveEntry(entries, 0, 1)
	if index != 1 || moved[0].ID != "b" || moved[1].ID != "a" {
		t.Fatalf("unexpected move %v at %d", moved, index)
	}
	if entries[0].ID != "a" {
		t.Fatalf("expected input untouched")
	}
	same, index := moveEntry(entries, 2, 1)
	if index != 2 || same[2].ID != "c" {
		t.Fatalf("expected out-of-range move to be a no-op")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("refresh failed for every source", 12)
	want := "refresh\nfailed for\nevery source"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := wrapText("abcdefghij xy", 4); got != "abcd\nefgh\nij\nxy" {
		t.Fatalf("expected long words to be cut, got %q", got)
	}
	if got := wrapText("a b\nc", 10); got != "a b\nc" {
		t.Fatalf("expected line breaks kept, got %q", got)
	}
	if wrapText("   ", 10) != "" {
		t.Fatalf("expected blank text to wrap to nothing")
	}
}

func TestParseOnOff(t *testing.T) {
	cases := map[string]bool{"on": true, "OFF": false, "yes": true, "0": false}
	for input, want := range cases {
		got, err := parseOnOff(input)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", input, want, got, err)
		}
	}
	if _, err := parseOnOff("maybe"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLocalListName(t *testing.T) {
	existing := map[string]string{"Inbox": "1", "Inbox (2)": "2"}
	if got := localListName(existing, "Inbox"); got != "Inbox (3)" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := localListName(existing, "Work"); got != "Work" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestRenderOverviewText(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	loc := time.UTC
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	lists := []overview.List{
		{ID: "tasks:1", Name: "Inbox", Items: []overview.Item{
			overview.TaskItem(overview.Task{ID: "t1", Title: "Pay rent", Due: day, HasDue: true}),
		}},
		{ID: "github:review", Name: "Review requests", Items: []overview.Item{
			overview.PullRequestItem(overview.PullRequest{ID: "o/r#4", Number: 4, Repository: "o/r", Title: "Fix it"}),
		}},
		{ID: "gmail:inbox", Name: "Inbox mail"},
	}
	events := []overview.Event{
		{ID: "e1", Summary: "Standup", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 15*time.Minute)},
	}
	free := []agenda.Slot{{Start: day.Add(9*time.Hour + 15*time.Minute), End: day.Add(18 * time.Hour)}}

	got := renderOverviewText(day, lists, events, free, loc)
	for _, want := range []string{
		"Overview for 2026-03-09",
		"Inbox (1)\n- Pay rent (due Mar 9)",
		"- Fix it (o/r#4)",
		"Inbox mail (0)\n- (none)",
		"- 09:00 - 09:15 Standup",
		"Free slots:\n- 09:15 - 18:00",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestAccountLine(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	got := accountLine(accounts.Account{Name: "GitHub", Connected: true, DisplayID: "octo", Link: "https://github.com"})
	if got != "- GitHub: connected as octo (https://github.com)" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestBuildChoicesNumbersDuplicates(t *testing.T) {
	choices := buildListChoices([]simpleList{{Title: "Work", ID: "1"}, {Title: "Home", ID: "2"}, {Title: "Work", ID: "3"}})
	got := labelsFromChoices(choices)
	want := []string{"Home", "Work (1)", "Work (2)"}
	if !equalStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	choice, ok := findChoice(choices, "Work (2)")
	if !ok || choice.Item.ID != "3" {
		t.Fatalf("unexpected choice %+v (%v)", choice, ok)
	}
	cals := buildCalendarChoices([]simpleCalendar{{Title: "Me", ID: "me@x", Primary: true}})
	if cals[0].Label != "Me (primary)" {
		t.Fatalf("unexpected calendar label %q", cals[0].Label)
	}
}
