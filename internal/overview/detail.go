package overview

// DetailKind says which pane the overview shows next to the accordion.
type DetailKind int

const (
	// DetailNone: the selection does not resolve (yet); nothing is shown.
	DetailNone DetailKind = iota
	// DetailNoViews: there are no lists at all.
	DetailNoViews
	// DetailNoItems: lists exist but every one is empty.
	DetailNoItems
	DetailTask
	DetailPullRequest
	DetailEvent
	DetailMessage
)

type Detail struct {
	Kind    DetailKind
	List    *List
	Item    *Item
	Subtask *Subtask
	// Selection is the resolved selection; its SubtaskID is cleared when the
	// requested subtask does not exist.
	Selection Selection
}

// Details picks the detail pane for sel.
func Details(lists []List, sel Selection) Detail {
	if len(lists) == 0 {
		return Detail{Kind: DetailNoViews}
	}
	if _, ok := FirstNonEmptyID(lists); !ok {
		return Detail{Kind: DetailNoItems}
	}
	res, ok := Resolve(lists, sel)
	if !ok {
		return Detail{Kind: DetailNone}
	}
	d := Detail{
		List:      res.List,
		Item:      res.Item,
		Selection: Selection{ListID: res.List.ID, ItemID: res.Item.ID},
	}
	switch res.Item.Kind {
	case KindTask:
		d.Kind = DetailTask
		if res.Subtask != nil {
			d.Subtask = res.Subtask
			d.Selection.SubtaskID = res.Subtask.ID
		}
	case KindPullRequest:
		d.Kind = DetailPullRequest
	case KindEvent:
		d.Kind = DetailEvent
	case KindMessage:
		d.Kind = DetailMessage
	}
	return d
}
