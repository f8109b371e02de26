package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/config"
	"taskdeck/internal/overview"
)

type listsTab int

const (
	tabVisibility listsTab = iota
	tabReorder
)

type listEntry struct {
	ID   string
	Name string
}

// listsModal edits which lists the overview shows and in what order.
type listsModal struct {
	tab     listsTab
	entries []listEntry
	hidden  map[string]bool
	cursor  int
	dirty   bool
}

func newListsModal(raw []overview.List, cfg *config.Config) listsModal {
	ordered := overview.ApplyOrder(raw, cfg.Overview.Order, nil)
	entries := make([]listEntry, 0, len(ordered))
	hidden := map[string]bool{}
	for _, list := range ordered {
		entries = append(entries, listEntry{ID: list.ID, Name: list.Name})
		if cfg.IsHidden(list.ID) {
			hidden[list.ID] = true
		}
	}
	return listsModal{entries: entries, hidden: hidden}
}

func (l listsModal) ids() []string {
	ids := make([]string, len(l.entries))
	for i, e := range l.entries {
		ids[i] = e.ID
	}
	return ids
}

// moveEntry swaps the entry at index with its neighbour delta away. It returns
// the new slice and the entry's new index; out-of-range moves change nothing.
func moveEntry(entries []listEntry, index, delta int) ([]listEntry, int) {
	target := index + delta
	if index < 0 || index >= len(entries) || target < 0 || target >= len(entries) {
		return entries, index
	}
	out := append([]listEntry(nil), entries...)
	out[index], out[target] = out[target], out[index]
	return out, target
}

func (m tuiModel) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	l := &m.lists
	switch keyMsg.String() {
	case "tab", "shift+tab":
		if l.tab == tabVisibility {
			l.tab = tabReorder
		} else {
			l.tab = tabVisibility
		}
	case "j", "down":
		if l.cursor < len(l.entries)-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case " ":
		if l.tab == tabVisibility && l.cursor < len(l.entries) {
			id := l.entries[l.cursor].ID
			l.hidden[id] = !l.hidden[id]
			l.dirty = true
		}
	case "K":
		if l.tab == tabReorder {
			l.entries, l.cursor = moveEntry(l.entries, l.cursor, -1)
			l.dirty = true
		}
	case "J":
		if l.tab == tabReorder {
			l.entries, l.cursor = moveEntry(l.entries, l.cursor, 1)
			l.dirty = true
		}
	case "esc", "L", "q":
		return m.closeLists()
	}
	return m, nil
}

// closeLists writes the modal's choices to the config and rearranges the
// overview with them.
func (m tuiModel) closeLists() (tea.Model, tea.Cmd) {
	m.state = stateOverview
	if !m.lists.dirty {
		return m, nil
	}
	cfg := m.app.Config
	cfg.SetOrder(m.lists.ids())
	for _, e := range m.lists.entries {
		cfg.SetHidden(e.ID, m.lists.hidden[e.ID])
	}
	if err := m.app.SaveConfig(); err != nil {
		m.status = err.Error()
	} else {
		m.status = "Lists updated"
	}
	m.ov.rearrange(cfg.Preferences())
	m.refreshDetails()
	return m, nil
}

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func (l listsModal) View() string {
	tabs := []string{"Visibility", "Reorder"}
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if listsTab(i) == l.tab {
			rendered[i] = tabActiveStyle.Render(t)
		} else {
			rendered[i] = tabInactiveStyle.Render(t)
		}
	}
	lines := []string{strings.Join(rendered, "   "), ""}
	if len(l.entries) == 0 {
		lines = append(lines, gray("No lists yet"))
	}
	for i, e := range l.entries {
		prefix := "  "
		if i == l.cursor {
			prefix = selectedRowStyle.Render("› ")
		}
		label := e.Name
		if l.tab == tabVisibility {
			box := "[x]"
			if l.hidden[e.ID] {
				box = "[ ]"
			}
			label = box + " " + label
		}
		lines = append(lines, prefix+label)
	}
	help := "tab: switch • space: show/hide • esc: done"
	if l.tab == tabReorder {
		help = "tab: switch • K/J: move up/down • esc: done"
	}
	lines = append(lines, "", gray(help))
	return strings.Join(lines, "\n")
}
