package metadata

import "testing"

func TestAppend(t *testing.T) {
	notes := Append("Call the bank", KeySource, "Slack")
	if notes != "Call the bank\ntaskdeck_source=Slack" {
		t.Fatalf("unexpected notes %q", notes)
	}
	if again := Append(notes, KeySource, "Slack"); again != notes {
		t.Fatalf("expected append to be idempotent, got %q", again)
	}
	if got := Append("", KeyLink, "https://example.com"); got != "taskdeck_link=https://example.com" {
		t.Fatalf("expected bare marker, got %q", got)
	}
}

func TestSplitJoin(t *testing.T) {
	notes := "Agenda:\n- budget\n\ntaskdeck_link=https://example.com/x\ntaskdeck_rrule=RRULE:FREQ=WEEKLY"
	body, fields := Split(notes)
	if body != "Agenda:\n- budget" {
		t.Fatalf("unexpected body %q", body)
	}
	if fields[KeyLink] != "https://example.com/x" || fields[KeyRRule] != "RRULE:FREQ=WEEKLY" {
		t.Fatalf("unexpected fields %v", fields)
	}
	joined := Join("Agenda:\n- budget, revised", fields)
	want := "Agenda:\n- budget, revised\ntaskdeck_rrule=RRULE:FREQ=WEEKLY\ntaskdeck_link=https://example.com/x"
	if joined != want {
		t.Fatalf("expected %q, got %q", want, joined)
	}
}

func TestSplitWithoutMarkers(t *testing.T) {
	body, fields := Split("just text\n")
	if body != "just text" || len(fields) != 0 {
		t.Fatalf("unexpected split %q %v", body, fields)
	}
}
