package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGitHub struct {
	login string
	err   error
}

func (f fakeGitHub) CurrentUser(context.Context) (string, error) {
	return f.login, f.err
}

func TestStatus(t *testing.T) {
	checker := Checker{
		TokenPath: "/tmp/token.json",
		GitHub:    fakeGitHub{login: "ana"},
		HasToken:  func(path string) bool { return path == "/tmp/token.json" },
	}
	got := checker.Status(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(got))
	}
	if got[0].Provider != Google || !got[0].Connected {
		t.Fatalf("expected google connected, got %+v", got[0])
	}
	if got[1].Provider != GitHub || !got[1].Connected || got[1].DisplayID != "ana" {
		t.Fatalf("expected github connected as ana, got %+v", got[1])
	}
}

func TestStatusDisconnected(t *testing.T) {
	checker := Checker{
		GitHub:   fakeGitHub{err: errors.New("not logged in")},
		HasToken: func(string) bool { return false },
	}
	for _, acc := range checker.Status(context.Background()) {
		if acc.Connected {
			t.Fatalf("expected %s disconnected", acc.Name)
		}
	}
}

func TestRenderShowsButton(t *testing.T) {
	out := Render(Account{Name: "GitHub", Logo: "⎇"}, false, 40)
	if !strings.Contains(out, "Connect") || strings.Contains(out, "Connected") {
		t.Fatalf("expected connect button, got %q", out)
	}
	out = Render(Account{Name: "GitHub", Logo: "⎇", Connected: true, DisplayID: "ana"}, true, 40)
	if !strings.Contains(out, "Connected") || !strings.Contains(out, "ana") {
		t.Fatalf("expected connected state, got %q", out)
	}
}

func TestParseProvider(t *testing.T) {
	if p, err := ParseProvider("github"); err != nil || p != GitHub {
		t.Fatalf("expected github, got %v %v", p, err)
	}
	if _, err := ParseProvider("jira"); err == nil {
		t.Fatalf("expected error")
	}
}
