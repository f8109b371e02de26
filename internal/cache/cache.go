// Package cache keeps the last fetched overview lists on disk so the TUI has
// something to show while the first refresh is in flight.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/overview"
)

const currentVersion = 2

type Snapshot struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Lists   []overview.List `json:"lists"`
}

// Load returns the stored snapshot. A missing, unreadable or outdated file
// yields ok=false and no error; only I/O failures other than "not found" are
// reported.
func Load(path string) (*Snapshot, bool, error) {
	// #nosec G304 -- path is controlled by the app cache location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, nil
	}
	if s.Version != currentVersion {
		return nil, false, nil
	}
	return &s, true, nil
}

func Save(path string, lists []overview.List, now time.Time) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Snapshot{
		Version: currentVersion,
		SavedAt: now.UTC(),
		Lists:   lists,
	}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
