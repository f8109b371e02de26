// Package overview holds the daily overview model: the lists shown in the
// accordion, the selection that addresses one of their items, and the pure
// transforms that keep the two consistent.
package overview

import "time"

// ListType tags what backs a list.
type ListType string

const (
	ListTypeTask     ListType = "task"
	ListTypeGitHub   ListType = "github"
	ListTypeCalendar ListType = "calendar"
	ListTypeMessage  ListType = "message"
)

// ItemKind is the discriminant of Item.
type ItemKind int

const (
	KindTask ItemKind = iota
	KindPullRequest
	KindEvent
	KindMessage
)

func (k ItemKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindPullRequest:
		return "pull_request"
	case KindEvent:
		return "event"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

type List struct {
	ID    string
	Name  string
	Type  ListType
	Items []Item
	// Source names the fetcher that produced the list, so a refresh that
	// fails for one source can keep that source's lists.
	Source string
}

func (l List) IsEmpty() bool {
	return len(l.Items) == 0
}

// Item is a view item. Only the payload named by Kind is set; build items with
// the constructors below.
type Item struct {
	Kind        ItemKind
	ID          string
	Task        *Task
	PullRequest *PullRequest
	Event       *Event
	Message     *Message
}

func TaskItem(t Task) Item {
	return Item{Kind: KindTask, ID: t.ID, Task: &t}
}

func PullRequestItem(pr PullRequest) Item {
	return Item{Kind: KindPullRequest, ID: pr.ID, PullRequest: &pr}
}

func EventItem(e Event) Item {
	return Item{Kind: KindEvent, ID: e.ID, Event: &e}
}

func MessageItem(m Message) Item {
	return Item{Kind: KindMessage, ID: m.ID, Message: &m}
}

func (i Item) Title() string {
	switch i.Kind {
	case KindTask:
		return i.Task.Title
	case KindPullRequest:
		return i.PullRequest.Title
	case KindEvent:
		return i.Event.Summary
	case KindMessage:
		return i.Message.Title
	default:
		return ""
	}
}

// Subtasks returns the item's subtasks; only tasks have any.
func (i Item) Subtasks() []Subtask {
	if i.Kind != KindTask || i.Task == nil {
		return nil
	}
	return i.Task.Subtasks
}

type Task struct {
	ID         string
	ListID     string
	Title      string
	Notes      string
	Due        time.Time
	HasDue     bool
	Completed  bool
	Deeplink   string
	Source     string
	Recurrence string
	Subtasks   []Subtask
}

type Subtask struct {
	ID        string
	Title     string
	Notes     string
	Completed bool
}

type PullRequest struct {
	ID         string
	Number     int
	Repository string
	Title      string
	Body       string
	Author     string
	URL        string
	IsDraft    bool
	UpdatedAt  time.Time
}

type Event struct {
	ID           string
	Summary      string
	Description  string
	CalendarName string
	Location     string
	Start        time.Time
	End          time.Time
	AllDay       bool
	Link         string
}

type Message struct {
	ID         string
	Title      string
	Body       string
	Source     MessageSource
	Sender     Sender
	Recipients Recipients
	SentAt     time.Time
	Link       string
}

type MessageSource struct {
	Name string
	Logo string
}

type Sender struct {
	Name    string
	Email   string
	ReplyTo string
}

type Recipient struct {
	Name  string
	Email string
}

type Recipients struct {
	To  []Recipient
	Cc  []Recipient
	Bcc []Recipient
}
