package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/cache"
	"taskdeck/internal/config"
	"taskdeck/internal/overview"
	"taskdeck/internal/route"
	"taskdeck/internal/source"
)

func testApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	return &App{
		Config:       config.Default(),
		ConfigPath:   filepath.Join(dir, "config.json"),
		SnapshotPath: filepath.Join(dir, "snapshot.json"),
		Location:     time.UTC,
	}
}

func sourceList(src, id string, itemIDs ...string) overview.List {
	list := overview.List{ID: id, Name: strings.ToUpper(id), Source: src}
	for _, itemID := range itemIDs {
		list.Items = append(list.Items, testTask(itemID))
	}
	return list
}

func deliver(t *testing.T, m tuiModel, batches ...source.Batch) (tuiModel, bool) {
	t.Helper()
	next, cmd := m.handleLists(listsMsg{batches: batches})
	return next.(tuiModel), cmd != nil
}

func listIDs(lists []overview.List) string {
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return strings.Join(ids, ",")
}

func TestSnapshotIsShownWithoutInitializing(t *testing.T) {
	app := testApp(t)
	if err := cache.Save(app.SnapshotPath, []overview.List{sourceList("tasks", "a", "1")}, time.Now()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	m := newTUIModel(app)
	if !m.fetching || !m.ov.loading {
		t.Fatalf("expected the first fetch to be in flight")
	}
	if listIDs(m.ov.lists) != "a" {
		t.Fatalf("expected snapshot lists, got %s", listIDs(m.ov.lists))
	}
	if m.ov.history.Current() != route.Prefix || m.ov.expanded.Len() != 0 {
		t.Fatalf("snapshot must not correct or expand: location=%q open=%v", m.ov.history.Current(), m.ov.expanded.IDs(m.ov.lists))
	}

	m, saved := deliver(t, m, source.Batch{Source: "tasks", Lists: []overview.List{
		sourceList("tasks", "a"),
		sourceList("tasks", "b", "2"),
	}})
	want := route.Format(overview.Selection{ListID: "b", ItemID: "2"})
	if got := m.ov.history.Current(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !m.ov.expanded.IsOpen("b") || m.ov.expanded.IsOpen("a") {
		t.Fatalf("expected the selected list open, got %v", m.ov.expanded.IDs(m.ov.lists))
	}
	if m.ov.history.Len() != 1 || !saved {
		t.Fatalf("expected a replaced location and a snapshot save, history=%d saved=%t", m.ov.history.Len(), saved)
	}
}

func TestHandleListsKeepsFailedSources(t *testing.T) {
	prSel := overview.Selection{ListID: "gh", ItemID: "pr1"}
	cases := []struct {
		name       string
		batches    []source.Batch
		wantLists  string
		wantSel    overview.Selection
		wantStatus string
		wantSave   bool
	}{
		{
			name: "github times out",
			batches: []source.Batch{
				{Source: "tasks", Lists: []overview.List{sourceList("tasks", "t", "1")}},
				{Source: "github", Err: errors.New("github: timeout")},
			},
			wantLists:  "t,gh",
			wantSel:    prSel,
			wantStatus: "Refresh failed: github: timeout",
			wantSave:   true,
		},
		{
			name: "every source fails",
			batches: []source.Batch{
				{Source: "tasks", Err: errors.New("tasks: offline")},
				{Source: "github", Err: errors.New("github: offline")},
			},
			wantLists:  "t,gh",
			wantSel:    prSel,
			wantStatus: "Refresh failed: tasks: offline",
		},
		{
			name: "pull request merged",
			batches: []source.Batch{
				{Source: "tasks", Lists: []overview.List{sourceList("tasks", "t", "1")}},
				{Source: "github", Lists: []overview.List{sourceList("github", "gh")}},
			},
			wantLists: "t,gh",
			wantSel:   overview.Selection{ListID: "t", ItemID: "1"},
			wantSave:  true,
		},
	}
	for _, tc := range cases {
		m := newTUIModel(testApp(t))
		m, _ = deliver(t, m,
			source.Batch{Source: "tasks", Lists: []overview.List{sourceList("tasks", "t", "1")}},
			source.Batch{Source: "github", Lists: []overview.List{sourceList("github", "gh", "pr1")}},
		)
		m.ov.history.Push(route.Format(prSel))

		m.fetching = true
		m.ov.setLoading(true)
		m, saved := deliver(t, m, tc.batches...)

		if got := listIDs(m.ov.lists); got != tc.wantLists {
			t.Fatalf("%s: expected lists %s, got %s", tc.name, tc.wantLists, got)
		}
		if got := m.ov.selection(); got != tc.wantSel {
			t.Fatalf("%s: expected selection %+v, got %+v", tc.name, tc.wantSel, got)
		}
		if m.status != tc.wantStatus {
			t.Fatalf("%s: expected status %q, got %q", tc.name, tc.wantStatus, m.status)
		}
		if saved != tc.wantSave {
			t.Fatalf("%s: expected snapshot save %t, got %t", tc.name, tc.wantSave, saved)
		}
		if m.fetching || m.ov.loading {
			t.Fatalf("%s: expected loading to end", tc.name)
		}
	}
}

func TestSuccessfulRefreshClearsFailure(t *testing.T) {
	m := newTUIModel(testApp(t))
	m, _ = deliver(t, m, source.Batch{Source: "tasks", Err: errors.New("tasks: offline")})
	if !strings.HasPrefix(m.status, "Refresh failed") {
		t.Fatalf("expected failure status, got %q", m.status)
	}
	m, _ = deliver(t, m, source.Batch{Source: "tasks", Lists: []overview.List{sourceList("tasks", "t", "1")}})
	if m.status != "" {
		t.Fatalf("expected status cleared, got %q", m.status)
	}
}

func TestToggleEmptySortPersists(t *testing.T) {
	app := testApp(t)
	m := newTUIModel(app)
	m, _ = deliver(t, m, source.Batch{Source: "tasks", Lists: []overview.List{
		sourceList("tasks", "a"),
		sourceList("tasks", "b", "1"),
	}})
	if got := listIDs(m.ov.lists); got != "b,a" {
		t.Fatalf("expected empty list last, got %s", got)
	}

	next, _ := m.toggleEmptySort()
	m = next.(tuiModel)
	if got := listIDs(m.ov.lists); got != "a,b" {
		t.Fatalf("expected original order, got %s", got)
	}
	if m.status != "Empty lists keep their place" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if got := m.ov.selection(); got != (overview.Selection{ListID: "b", ItemID: "1"}) {
		t.Fatalf("toggling must keep the selection, got %+v", got)
	}
	cfg, err := config.LoadOrCreate(app.ConfigPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.Overview.AutomaticEmptySort {
		t.Fatalf("expected the setting to be saved off")
	}
}
