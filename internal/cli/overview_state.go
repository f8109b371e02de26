package cli

import (
	"taskdeck/internal/logger"
	"taskdeck/internal/overview"
	"taskdeck/internal/route"
)

type rowKind int

const (
	rowList rowKind = iota
	rowItem
	rowSubtask
)

// row is one line of the accordion.
type row struct {
	kind    rowKind
	list    *overview.List
	item    *overview.Item
	subtask *overview.Subtask
}

func (r row) selection() overview.Selection {
	sel := overview.Selection{ListID: r.list.ID}
	if r.item != nil {
		sel.ItemID = r.item.ID
	}
	if r.subtask != nil {
		sel.SubtaskID = r.subtask.ID
	}
	return sel
}

// overviewState is the accordion controller. It owns the arranged lists, the
// open sections and the navigation history, and keeps the selection valid
// after every change to any of them.
type overviewState struct {
	raw      []overview.List
	lists    []overview.List
	history  *route.History
	expanded *overview.Expanded
	loading  bool
	cursor   int
}

func newOverviewState(start string) *overviewState {
	return &overviewState{
		history:  route.NewHistory(start),
		expanded: overview.NewExpanded(),
	}
}

func (s *overviewState) setLoading(loading bool) {
	s.loading = loading
	s.synchronize()
}

// setLists stores a fetch result. The first load that finds items opens the
// first non-empty list.
func (s *overviewState) setLists(raw []overview.List, prefs overview.Preferences) {
	s.raw = raw
	s.lists = overview.Arrange(raw, prefs)
	if !s.loading {
		s.expanded.Init(s.lists)
	}
	s.synchronize()
	s.focusSelection()
}

// rearrange reapplies preferences without touching the selection.
func (s *overviewState) rearrange(prefs overview.Preferences) {
	focused, ok := s.current()
	var sel overview.Selection
	if ok {
		sel = focused.selection()
	}
	s.lists = overview.Arrange(s.raw, prefs)
	s.synchronize()
	if ok {
		s.focus(sel, focused.kind)
	}
	s.clamp()
}

func (s *overviewState) synchronize() overview.Decision {
	d := overview.Synchronize(s.selection(), s.lists, s.loading)
	switch d.Action {
	case overview.ActionReplace:
		logger.WithComponent("overview").Debug("selection corrected", "from", s.history.Current(), "to", route.Format(d.Selection))
		s.history.Replace(route.Format(d.Selection))
	case overview.ActionClear:
		logger.WithComponent("overview").Debug("selection cleared", "from", s.history.Current())
		s.history.Replace(route.Prefix)
	case overview.ActionKeep, overview.ActionWait:
	}
	return d
}

func (s *overviewState) selection() overview.Selection {
	return s.history.Selection()
}

func (s *overviewState) detail() overview.Detail {
	return overview.Details(s.lists, s.selection())
}

func (s *overviewState) rows() []row {
	sel := s.selection()
	var out []row
	for li := range s.lists {
		list := &s.lists[li]
		out = append(out, row{kind: rowList, list: list})
		if !s.expanded.IsOpen(list.ID) {
			continue
		}
		for ii := range list.Items {
			item := &list.Items[ii]
			out = append(out, row{kind: rowItem, list: list, item: item})
			if sel.ListID != list.ID || sel.ItemID != item.ID || item.Kind != overview.KindTask {
				continue
			}
			for si := range item.Task.Subtasks {
				out = append(out, row{kind: rowSubtask, list: list, item: item, subtask: &item.Task.Subtasks[si]})
			}
		}
	}
	return out
}

func (s *overviewState) current() (row, bool) {
	rows := s.rows()
	if s.cursor < 0 || s.cursor >= len(rows) {
		return row{}, false
	}
	return rows[s.cursor], true
}

func (s *overviewState) move(delta int) {
	s.cursor += delta
	s.clamp()
}

func (s *overviewState) clamp() {
	n := len(s.rows())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// activate toggles the list under the cursor, or selects the item or subtask
// under it with a new history entry.
func (s *overviewState) activate() {
	r, ok := s.current()
	if !ok {
		return
	}
	switch r.kind {
	case rowList:
		s.expanded.Toggle(r.list.ID)
		s.clamp()
		return
	case rowItem, rowSubtask:
		s.history.Push(route.Format(r.selection()))
		s.synchronize()
		s.focusSelection()
	}
}

// back returns to the previous location and revalidates it, since the lists
// may have changed since it was current.
func (s *overviewState) back() bool {
	if !s.history.Back() {
		return false
	}
	s.synchronize()
	sel := s.selection()
	if sel.ListID != "" {
		s.expanded.Open(sel.ListID)
	}
	s.focusSelection()
	return true
}

// collapseAll closes every section and parks the cursor on the header of the
// selected item's list.
func (s *overviewState) collapseAll() {
	s.expanded.CollapseAll()
	if sel := s.selection(); sel.ListID != "" {
		s.focus(overview.Selection{ListID: sel.ListID}, rowList)
	}
	s.clamp()
}

func (s *overviewState) expandAll() {
	s.expanded.ExpandAll(s.lists)
	s.focusSelection()
}

// closeCurrentList closes the section under the cursor and leaves the cursor
// on its header.
func (s *overviewState) closeCurrentList() {
	r, ok := s.current()
	if !ok {
		return
	}
	s.expanded.Close(r.list.ID)
	s.focus(overview.Selection{ListID: r.list.ID}, rowList)
	s.clamp()
}

// focusSelection moves the cursor onto the selected row when it is visible.
func (s *overviewState) focusSelection() {
	sel := s.selection()
	if sel.IsZero() {
		s.clamp()
		return
	}
	kind := rowItem
	if sel.SubtaskID != "" {
		kind = rowSubtask
	}
	if !s.focus(sel, kind) && kind == rowSubtask {
		sel.SubtaskID = ""
		s.focus(sel, rowItem)
	}
	s.clamp()
}

func (s *overviewState) focus(sel overview.Selection, kind rowKind) bool {
	for i, r := range s.rows() {
		if r.kind == kind && r.selection() == sel {
			s.cursor = i
			return true
		}
	}
	return false
}

// listIDs returns the ids of all fetched lists, hidden ones included.
func (s *overviewState) listIDs() []string {
	ids := make([]string, 0, len(s.raw))
	for _, list := range s.raw {
		ids = append(ids, list.ID)
	}
	return ids
}
