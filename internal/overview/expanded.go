package overview

// Expanded is the set of open accordion sections. Membership is the only
// state: a list is open exactly when its id is in the set.
type Expanded struct {
	open        map[string]bool
	initialized bool
}

func NewExpanded() *Expanded {
	return &Expanded{open: map[string]bool{}}
}

// Init opens the first non-empty list. Only the first call that sees a
// non-empty list has any effect; later loads keep the user's choices.
func (e *Expanded) Init(lists []List) {
	if e.initialized {
		return
	}
	id, ok := FirstNonEmptyID(lists)
	if !ok {
		return
	}
	e.open = map[string]bool{id: true}
	e.initialized = true
}

func (e *Expanded) Initialized() bool {
	return e.initialized
}

func (e *Expanded) ExpandAll(lists []List) {
	e.open = make(map[string]bool, len(lists))
	for _, list := range lists {
		e.open[list.ID] = true
	}
}

func (e *Expanded) CollapseAll() {
	e.open = map[string]bool{}
}

func (e *Expanded) Open(id string) {
	if e.open == nil {
		e.open = map[string]bool{}
	}
	e.open[id] = true
}

func (e *Expanded) Close(id string) {
	delete(e.open, id)
}

func (e *Expanded) Toggle(id string) {
	if e.IsOpen(id) {
		e.Close(id)
		return
	}
	e.Open(id)
}

func (e *Expanded) IsOpen(id string) bool {
	return e.open[id]
}

func (e *Expanded) Len() int {
	return len(e.open)
}

// IDs returns the open ids in list order. Ids of lists that no longer exist
// are left out but stay in the set.
func (e *Expanded) IDs(lists []List) []string {
	ids := []string{}
	for _, list := range lists {
		if e.open[list.ID] {
			ids = append(ids, list.ID)
		}
	}
	return ids
}
