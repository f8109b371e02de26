package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck", "config.json")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Overview.AutomaticEmptySort {
		t.Fatalf("expected automatic empty sort on by default")
	}
	if !reflect.DeepEqual(cfg.ViewCalendars, []string{"primary"}) {
		t.Fatalf("unexpected view calendars %v", cfg.ViewCalendars)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"lists":{"Inbox":"abc"},"refresh_seconds":5}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Overview.AutomaticEmptySort {
		t.Fatalf("missing overview block should keep the default preference")
	}
	if cfg.RefreshSeconds != minRefreshSeconds {
		t.Fatalf("expected refresh clamped to %d, got %d", minRefreshSeconds, cfg.RefreshSeconds)
	}
	if cfg.GmailQuery != defaultGmailQuery {
		t.Fatalf("expected default gmail query, got %q", cfg.GmailQuery)
	}
}

func TestLoadHonorsDisabledEmptySort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"overview":{"automatic_empty_sort":false,"order":["b","a","b"," "],"hidden":["c"]}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prefs := cfg.Preferences()
	if prefs.AutomaticEmptySort {
		t.Fatalf("expected empty sort disabled")
	}
	if !reflect.DeepEqual(prefs.Order, []string{"b", "a"}) {
		t.Fatalf("unexpected order %v", prefs.Order)
	}
	if !reflect.DeepEqual(prefs.Hidden, []string{"c"}) {
		t.Fatalf("unexpected hidden %v", prefs.Hidden)
	}
}

func TestListIDUnknown(t *testing.T) {
	cfg := Default()
	cfg.Lists["Inbox"] = "list-1"
	id, err := cfg.ListID("Inbox")
	if err != nil || id != "list-1" {
		t.Fatalf("expected list-1, got %q (%v)", id, err)
	}
	if _, err := cfg.ListID("Work"); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("expected ErrUnknownList, got %v", err)
	}
}

func TestSetHidden(t *testing.T) {
	cfg := Default()
	cfg.SetHidden("a", true)
	cfg.SetHidden("a", true)
	if !cfg.IsHidden("a") || len(cfg.Overview.Hidden) != 1 {
		t.Fatalf("expected a hidden once, got %v", cfg.Overview.Hidden)
	}
	cfg.SetHidden("a", false)
	if cfg.IsHidden("a") {
		t.Fatalf("expected a visible")
	}
}

func TestNormalizeDropsEmptyGitHubQueries(t *testing.T) {
	cfg := Default()
	cfg.GitHubQueries = []GitHubQuery{{Name: "", Search: "author:@me"}, {Name: "empty", Search: " "}}
	normalize(cfg)
	want := []GitHubQuery{{Name: "author:@me", Search: "author:@me"}}
	if !reflect.DeepEqual(cfg.GitHubQueries, want) {
		t.Fatalf("unexpected queries %v", cfg.GitHubQueries)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.SetOrder([]string{"x", "y"})
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Overview.Order, []string{"x", "y"}) {
		t.Fatalf("unexpected order %v", loaded.Overview.Order)
	}
}
