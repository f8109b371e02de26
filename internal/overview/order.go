package overview

// SortEmptyLast moves every empty list after every non-empty one. Relative
// order inside each group is kept, so applying it twice changes nothing. The
// input slice is not modified.
func SortEmptyLast(lists []List) []List {
	out := make([]List, 0, len(lists))
	var empty []List
	for _, list := range lists {
		if list.IsEmpty() {
			empty = append(empty, list)
			continue
		}
		out = append(out, list)
	}
	return append(out, empty...)
}

// ApplyOrder arranges lists by the ids in order, appends lists not named
// there in their original order, and drops hidden ids.
func ApplyOrder(lists []List, order []string, hidden []string) []List {
	hide := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		hide[id] = true
	}
	byID := make(map[string]int, len(lists))
	for i, list := range lists {
		byID[list.ID] = i
	}
	used := make(map[string]bool, len(lists))
	out := make([]List, 0, len(lists))
	for _, id := range order {
		i, ok := byID[id]
		if !ok || used[id] || hide[id] {
			continue
		}
		used[id] = true
		out = append(out, lists[i])
	}
	for _, list := range lists {
		if used[list.ID] || hide[list.ID] {
			continue
		}
		used[list.ID] = true
		out = append(out, list)
	}
	return out
}

// Arrange is the full pipeline applied to fetched lists before display.
func Arrange(lists []List, prefs Preferences) []List {
	arranged := ApplyOrder(lists, prefs.Order, prefs.Hidden)
	if prefs.AutomaticEmptySort {
		arranged = SortEmptyLast(arranged)
	}
	return arranged
}

// Preferences are the user's overview settings, passed in explicitly.
type Preferences struct {
	AutomaticEmptySort bool
	Order              []string
	Hidden             []string
}
