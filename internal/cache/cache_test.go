package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/overview"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "snapshot.json")
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	lists := []overview.List{
		{ID: "tasks:a", Name: "Inbox", Type: overview.ListTypeTask, Items: []overview.Item{
			overview.TaskItem(overview.Task{ID: "t1", Title: "Pay rent", Subtasks: []overview.Subtask{{ID: "s1", Title: "Transfer"}}}),
		}, Source: "Google Tasks"},
		{ID: "github:review", Name: "Reviews", Type: overview.ListTypeGitHub, Source: "GitHub"},
	}
	if err := Save(path, lists, now); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap, ok, err := Load(path)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !snap.SavedAt.Equal(now) {
		t.Fatalf("unexpected saved_at %v", snap.SavedAt)
	}
	if len(snap.Lists) != 2 || snap.Lists[0].Items[0].Task.Subtasks[0].Title != "Transfer" {
		t.Fatalf("unexpected lists %+v", snap.Lists)
	}
	if snap.Lists[1].Source != "GitHub" {
		t.Fatalf("expected source to survive, got %q", snap.Lists[1].Source)
	}
	if snap.Lists[0].Items[0].Kind != overview.KindTask {
		t.Fatalf("expected task kind")
	}
}

func TestLoadMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := Load(filepath.Join(dir, "missing.json")); ok || err != nil {
		t.Fatalf("expected no snapshot, got ok=%v err=%v", ok, err)
	}
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := Load(path); ok || err != nil {
		t.Fatalf("expected corrupt snapshot ignored, got ok=%v err=%v", ok, err)
	}
	old := filepath.Join(dir, "old.json")
	if err := os.WriteFile(old, []byte(`{"version":1,"lists":[{"ID":"a"}]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := Load(old); ok || err != nil {
		t.Fatalf("expected outdated snapshot ignored, got ok=%v err=%v", ok, err)
	}
}
