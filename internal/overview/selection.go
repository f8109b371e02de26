package overview

// Selection addresses the item shown in the detail pane. SubtaskID is
// optional.
type Selection struct {
	ListID    string
	ItemID    string
	SubtaskID string
}

// IsZero reports whether the selection names nothing at all. A selection that
// carries only a subtask id is not zero; it is stale and gets cleared.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Resolved is a selection looked up against the current lists. Subtask is nil
// when the selection names none or the named one no longer exists.
type Resolved struct {
	List    *List
	Item    *Item
	Subtask *Subtask
}

// Resolve reports whether sel names an existing list and item. An unknown
// subtask does not fail resolution.
func Resolve(lists []List, sel Selection) (Resolved, bool) {
	if sel.ListID == "" || sel.ItemID == "" {
		return Resolved{}, false
	}
	for li := range lists {
		list := &lists[li]
		if list.ID != sel.ListID {
			continue
		}
		for ii := range list.Items {
			item := &list.Items[ii]
			if item.ID != sel.ItemID {
				continue
			}
			res := Resolved{List: list, Item: item}
			if sel.SubtaskID != "" && item.Kind == KindTask {
				for si := range item.Task.Subtasks {
					if item.Task.Subtasks[si].ID == sel.SubtaskID {
						res.Subtask = &item.Task.Subtasks[si]
						break
					}
				}
			}
			return res, true
		}
	}
	return Resolved{}, false
}

// FirstSelection returns the first item of the first non-empty list.
func FirstSelection(lists []List) (Selection, bool) {
	for _, list := range lists {
		if len(list.Items) > 0 {
			return Selection{ListID: list.ID, ItemID: list.Items[0].ID}, true
		}
	}
	return Selection{}, false
}

// FirstNonEmptyID returns the id of the first list holding at least one item.
func FirstNonEmptyID(lists []List) (string, bool) {
	for _, list := range lists {
		if len(list.Items) > 0 {
			return list.ID, true
		}
	}
	return "", false
}
