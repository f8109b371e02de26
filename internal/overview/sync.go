package overview

// Action tells the caller what to do with its location after Synchronize.
type Action int

const (
	// ActionKeep leaves the current selection in place.
	ActionKeep Action = iota
	// ActionReplace swaps the location for Decision.Selection without adding
	// a history entry.
	ActionReplace
	// ActionClear empties the selection; the empty state is shown.
	ActionClear
	// ActionWait defers any correction until loading finishes.
	ActionWait
)

func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionReplace:
		return "replace"
	case ActionClear:
		return "clear"
	case ActionWait:
		return "wait"
	default:
		return "unknown"
	}
}

type Decision struct {
	Action    Action
	Selection Selection
}

// Synchronize validates sel against lists. It must run after every change to
// either, since refreshes can remove the selected item at any time.
func Synchronize(sel Selection, lists []List, loading bool) Decision {
	if _, ok := Resolve(lists, sel); ok {
		return Decision{Action: ActionKeep, Selection: sel}
	}
	if loading {
		return Decision{Action: ActionWait, Selection: sel}
	}
	first, ok := FirstSelection(lists)
	if !ok {
		if sel.IsZero() {
			return Decision{Action: ActionKeep}
		}
		return Decision{Action: ActionClear}
	}
	return Decision{Action: ActionReplace, Selection: first}
}
