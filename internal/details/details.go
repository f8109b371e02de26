// Package details renders the read-only pane shown next to the overview
// accordion for the selected item.
package details

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/overview"
	"taskdeck/internal/recurrence"
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	iconStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	linkStyle  = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
)

// Icons shown at the top of panes, keyed by source logo name.
var logos = map[string]string{
	"gmail":    "✉",
	"gcal":     "◷",
	"gtasks":   "☑",
	"github":   "⎇",
	"slack":    "#",
	"jira":     "◆",
	"list":     "☰",
	"overview": "◎",
}

func logo(name string) string {
	if glyph, ok := logos[name]; ok {
		return glyph
	}
	return "•"
}

// Options tune rendering. Location defaults to time.Local.
type Options struct {
	Width    int
	Location *time.Location
	// Now anchors the next occurrence of recurring tasks. Zero hides it.
	Now time.Time
	// Link is the location of the shown item, printed at the bottom of
	// task panes.
	Link string
}

func (o Options) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Render draws the pane for d.
func Render(d overview.Detail, opts Options) string {
	switch d.Kind {
	case overview.DetailNoViews:
		return Empty("list", "You have no views")
	case overview.DetailNoItems:
		return Empty("overview", "Nothing left for today")
	case overview.DetailTask:
		return Task(*d.Item.Task, d.Subtask, opts)
	case overview.DetailPullRequest:
		return PullRequest(*d.Item.PullRequest, opts)
	case overview.DetailEvent:
		return Event(*d.Item.Event, opts)
	case overview.DetailMessage:
		return Message(*d.Item.Message, opts)
	case overview.DetailNone:
		return ""
	default:
		return ""
	}
}

// Empty is the placeholder shown instead of a detail pane.
func Empty(icon, text string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		iconStyle.Render(logo(icon)),
		"",
		mutedStyle.Render(text),
	)
}

func template(top, title, subtitle, body string) string {
	parts := []string{}
	if top != "" {
		parts = append(parts, top)
	}
	parts = append(parts, titleStyle.Render(title))
	if subtitle != "" {
		parts = append(parts, subtitle)
	}
	if strings.TrimSpace(body) != "" {
		parts = append(parts, "", body)
	}
	return strings.Join(parts, "\n")
}

// Task renders a task, or one of its subtasks when subtask is set.
func Task(task overview.Task, subtask *overview.Subtask, opts Options) string {
	source := task.Source
	if source == "" {
		source = "Google Tasks"
	}
	top := iconStyle.Render(logo("gtasks")) + " " + mutedStyle.Render(source)
	title := task.Title
	notes := task.Notes
	meta := []string{}
	if subtask != nil {
		top += mutedStyle.Render(" › " + task.Title)
		title = subtask.Title
		notes = subtask.Notes
		if subtask.Completed {
			meta = append(meta, "completed")
		}
	} else {
		if task.HasDue {
			meta = append(meta, "due "+task.Due.In(opts.loc()).Format("Mon Jan 2"))
		}
		if text, ok := recurrence.Describe(task.Recurrence, opts.loc()); ok {
			meta = append(meta, "repeats "+text)
			if next, ok := nextOccurrence(task, opts); ok {
				meta = append(meta, "next "+next.Format("Mon Jan 2"))
			}
		}
		if n := len(task.Subtasks); n > 0 {
			done := 0
			for _, st := range task.Subtasks {
				if st.Completed {
					done++
				}
			}
			meta = append(meta, fmt.Sprintf("%d/%d subtasks", done, n))
		}
	}
	body := renderMarkdown(notes, opts.Width)
	if subtask == nil && len(task.Subtasks) > 0 {
		rows := make([]string, 0, len(task.Subtasks))
		for _, st := range task.Subtasks {
			box := "[ ]"
			if st.Completed {
				box = "[x]"
			}
			rows = append(rows, fmt.Sprintf("%s %s", box, st.Title))
		}
		if body != "" {
			body += "\n\n"
		}
		body += strings.Join(rows, "\n")
	}
	if opts.Link != "" {
		body += "\n\n" + mutedStyle.Render(opts.Link)
	}
	if task.Deeplink != "" {
		body += "\n" + linkStyle.Render(task.Deeplink)
	}
	return template(top, title, mutedStyle.Render(strings.Join(meta, " · ")), body)
}

func nextOccurrence(task overview.Task, opts Options) (time.Time, bool) {
	if opts.Now.IsZero() {
		return time.Time{}, false
	}
	var start time.Time
	if task.HasDue {
		start = task.Due
	}
	next, ok, err := recurrence.NextOccurrence(task.Recurrence, start, opts.Now, opts.loc())
	if err != nil || !ok {
		return time.Time{}, false
	}
	return next, true
}

func PullRequest(pr overview.PullRequest, opts Options) string {
	top := iconStyle.Render(logo("github")) + " " + mutedStyle.Render(fmt.Sprintf("%s#%d", pr.Repository, pr.Number))
	meta := []string{}
	if pr.Author != "" {
		meta = append(meta, "by "+pr.Author)
	}
	if pr.IsDraft {
		meta = append(meta, "draft")
	}
	if !pr.UpdatedAt.IsZero() {
		meta = append(meta, "updated "+pr.UpdatedAt.In(opts.loc()).Format("Jan 2 15:04"))
	}
	body := renderMarkdown(pr.Body, opts.Width)
	if pr.URL != "" {
		body += "\n\n" + linkStyle.Render(pr.URL)
	}
	return template(top, pr.Title, mutedStyle.Render(strings.Join(meta, " · ")), body)
}

func Event(ev overview.Event, opts Options) string {
	top := iconStyle.Render(logo("gcal")) + " " + mutedStyle.Render(ev.CalendarName)
	when := "all day"
	if !ev.AllDay {
		loc := opts.loc()
		when = fmt.Sprintf("%s – %s", ev.Start.In(loc).Format("15:04"), ev.End.In(loc).Format("15:04"))
	}
	meta := []string{when}
	if ev.Location != "" {
		meta = append(meta, ev.Location)
	}
	body := renderMarkdown(ev.Description, opts.Width)
	if ev.Link != "" {
		body += "\n\n" + linkStyle.Render(ev.Link)
	}
	return template(top, ev.Summary, mutedStyle.Render(strings.Join(meta, " · ")), body)
}

// Message renders a message: source on top, the subject as title, sender and
// recipients below it, and the HTML body reduced to text.
func Message(msg overview.Message, opts Options) string {
	top := iconStyle.Render(logo(msg.Source.Logo)) + " " + mutedStyle.Render(msg.Source.Name)
	body := htmlToText(msg.Body)
	if !msg.SentAt.IsZero() {
		body = mutedStyle.Render(msg.SentAt.In(opts.loc()).Format("Mon Jan 2 15:04")) + "\n\n" + body
	}
	if msg.Link != "" {
		body += "\n\n" + linkStyle.Render(msg.Link)
	}
	return template(top, msg.Title, mutedStyle.Render(messageSubtitle(msg)), body)
}

func messageSubtitle(msg overview.Message) string {
	lines := []string{"From: " + formatSender(msg.Sender)}
	if len(msg.Recipients.To) > 0 {
		lines = append(lines, "To: "+formatRecipients(msg.Recipients.To))
	}
	if len(msg.Recipients.Cc) > 0 {
		lines = append(lines, "Cc: "+formatRecipients(msg.Recipients.Cc))
	}
	if len(msg.Recipients.Bcc) > 0 {
		lines = append(lines, "Bcc: "+formatRecipients(msg.Recipients.Bcc))
	}
	return strings.Join(lines, "\n")
}

func formatSender(s overview.Sender) string {
	out := formatAddress(s.Name, s.Email)
	if s.ReplyTo != "" && s.ReplyTo != s.Email {
		out += " (reply to " + s.ReplyTo + ")"
	}
	return out
}

func formatRecipients(rs []overview.Recipient) string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, formatAddress(r.Name, r.Email))
	}
	return strings.Join(parts, ", ")
}

func formatAddress(name, email string) string {
	switch {
	case name == "":
		return email
	case email == "":
		return name
	default:
		return name + " <" + email + ">"
	}
}
