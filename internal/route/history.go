package route

import "taskdeck/internal/overview"

// History is a browser-style location stack. The TUI owns one and only
// touches it from its update loop.
type History struct {
	entries []string
}

func NewHistory(start string) *History {
	if start == "" {
		start = Prefix
	}
	return &History{entries: []string{start}}
}

func (h *History) Current() string {
	return h.entries[len(h.entries)-1]
}

// Params parses the current location. Locations outside the overview parse
// as an empty selection.
func (h *History) Params() Params {
	p, err := Parse(h.Current())
	if err != nil {
		return Params{}
	}
	return p
}

func (h *History) Selection() overview.Selection {
	return h.Params().Selection()
}

// Push adds a new entry unless loc is already current.
func (h *History) Push(loc string) {
	if loc == h.Current() {
		return
	}
	h.entries = append(h.entries, loc)
}

// Replace swaps the current entry so Back skips it.
func (h *History) Replace(loc string) {
	h.entries[len(h.entries)-1] = loc
}

// Back drops the current entry. It reports false at the first entry.
func (h *History) Back() bool {
	if len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

func (h *History) Len() int {
	return len(h.entries)
}
