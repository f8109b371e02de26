package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"taskdeck/internal/overview"
)

var ErrUnknownList = errors.New("unknown list")

const (
	defaultRefreshSeconds = 300
	minRefreshSeconds     = 30
	defaultGmailQuery     = "is:unread in:inbox"
)

type Config struct {
	CalendarID     string            `json:"calendar_id"`
	ViewCalendars  []string          `json:"view_calendars"`
	WorkdayStart   string            `json:"workday_start"`
	WorkdayEnd     string            `json:"workday_end"`
	Timezone       string            `json:"timezone"`
	Lists          map[string]string `json:"lists"`
	GmailQuery     string            `json:"gmail_query"`
	GitHubQueries  []GitHubQuery     `json:"github_queries"`
	RefreshSeconds int               `json:"refresh_seconds"`
	Overview       Overview          `json:"overview"`
}

// GitHubQuery is one pull request list, backed by a `gh search prs` query.
type GitHubQuery struct {
	Name   string `json:"name"`
	Search string `json:"search"`
}

// Overview holds the user's preferences for the daily overview.
type Overview struct {
	AutomaticEmptySort bool     `json:"automatic_empty_sort"`
	Order              []string `json:"order"`
	Hidden             []string `json:"hidden"`
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// parse decodes data over the defaults so fields missing from older files
// keep their default values.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	normalize(cfg)
	return cfg, nil
}

// ListID returns the Google tasklist id configured under name.
func (c *Config) ListID(name string) (string, error) {
	id, ok := c.Lists[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return id, nil
}

// ListNames returns the configured list names sorted.
func (c *Config) ListNames() []string {
	names := make([]string, 0, len(c.Lists))
	for name := range c.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Preferences() overview.Preferences {
	return overview.Preferences{
		AutomaticEmptySort: c.Overview.AutomaticEmptySort,
		Order:              slices.Clone(c.Overview.Order),
		Hidden:             slices.Clone(c.Overview.Hidden),
	}
}

// SetHidden shows or hides the list with the given overview id.
func (c *Config) SetHidden(listID string, hidden bool) {
	c.Overview.Hidden = slices.DeleteFunc(c.Overview.Hidden, func(id string) bool { return id == listID })
	if hidden {
		c.Overview.Hidden = append(c.Overview.Hidden, listID)
	}
}

func (c *Config) IsHidden(listID string) bool {
	return slices.Contains(c.Overview.Hidden, listID)
}

// SetOrder stores the display order of list ids.
func (c *Config) SetOrder(ids []string) {
	c.Overview.Order = dedupe(ids)
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func Default() *Config {
	return &Config{
		CalendarID:     "primary",
		ViewCalendars:  nil,
		WorkdayStart:   "09:00",
		WorkdayEnd:     "18:00",
		Timezone:       "local",
		Lists:          map[string]string{},
		GmailQuery:     defaultGmailQuery,
		GitHubQueries:  []GitHubQuery{{Name: "Review requests", Search: "is:open review-requested:@me"}},
		RefreshSeconds: defaultRefreshSeconds,
		Overview:       Overview{AutomaticEmptySort: true},
	}
}

func LoadOrCreate(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			normalize(cfg)
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	if cfg.WorkdayStart == "" {
		cfg.WorkdayStart = "09:00"
	}
	if cfg.WorkdayEnd == "" {
		cfg.WorkdayEnd = "18:00"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "local"
	}
	if cfg.Lists == nil {
		cfg.Lists = map[string]string{}
	}
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = defaultRefreshSeconds
	}
	if cfg.RefreshSeconds < minRefreshSeconds {
		cfg.RefreshSeconds = minRefreshSeconds
	}
	queries := cfg.GitHubQueries[:0]
	for _, q := range cfg.GitHubQueries {
		q.Name = strings.TrimSpace(q.Name)
		q.Search = strings.TrimSpace(q.Search)
		if q.Search == "" {
			continue
		}
		if q.Name == "" {
			q.Name = q.Search
		}
		queries = append(queries, q)
	}
	cfg.GitHubQueries = queries
	cfg.Overview.Order = dedupe(cfg.Overview.Order)
	cfg.Overview.Hidden = dedupe(cfg.Overview.Hidden)

	cfg.ViewCalendars = dedupe(cfg.ViewCalendars)
	if len(cfg.ViewCalendars) == 0 {
		cfg.ViewCalendars = []string{cfg.CalendarID}
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
