package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/cache"
	"taskdeck/internal/details"
	"taskdeck/internal/editor"
	"taskdeck/internal/logger"
	"taskdeck/internal/overview"
	"taskdeck/internal/route"
	"taskdeck/internal/source"
	"taskdeck/internal/toolbar"
)

type tuiState int

const (
	stateOverview tuiState = iota
	stateNotes
	stateLists
	stateAccounts
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")

	selectedRowStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	listRowStyle     = lipgloss.NewStyle().Bold(true)
	mutedRowStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Complete    key.Binding
	CollapseAll key.Binding
	ExpandAll   key.Binding
	CloseList   key.Binding
	EmptySort   key.Binding
	Notes       key.Binding
	Lists       key.Binding
	Accounts    key.Binding
	Refresh     key.Binding
	Back        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Complete:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
	CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
	ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand")),
	CloseList:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close list")),
	EmptySort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "empty last")),
	Notes:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
	Lists:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lists")),
	Accounts:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "accounts")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Back:        key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
	PageUp:      key.NewBinding(key.WithKeys("pgup")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// notesTarget is the task or subtask being edited.
type notesTarget struct {
	listID string
	taskID string
	title  string
}

type tuiModel struct {
	app *App

	state    tuiState
	ov       *overviewState
	spinner  spinner.Model
	viewport viewport.Model

	editor *editor.Model
	notes  notesTarget

	lists    listsModal
	accounts accountsScreen

	fetching bool
	status   string

	winW int
	winH int
}

type listsMsg struct {
	batches []source.Batch
}

type okMsg struct{ msg string }

type errMsg struct{ err error }

type tickMsg time.Time

type notesSavedMsg struct{}

func startTUI(app *App) error {
	model := newTUIModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newTUIModel(app *App) tuiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := tuiModel{
		app:      app,
		state:    stateOverview,
		ov:       newOverviewState(route.Prefix),
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
	// Init starts the first fetch. The snapshot is shown inside that loading
	// window, so it neither opens sections nor corrects the location.
	m.fetching = true
	m.ov.setLoading(true)
	if snap, ok, err := cache.Load(app.SnapshotPath); err != nil {
		logger.WithComponent("tui").Warn("snapshot load failed", "error", err)
	} else if ok {
		m.ov.setLists(snap.Lists, app.Config.Preferences())
	}
	if app.GoogleErr != nil {
		m.status = "Google is not connected. Press A to connect accounts."
	}
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startFetch(), m.tickCmd())
}

// startFetch fetches every source. Use beginFetch from Update so the loading
// state is tracked.
func (m tuiModel) startFetch() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return listsMsg{batches: app.Aggregator.FetchBatches(ctx)}
	}
}

func (m *tuiModel) beginFetch() tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	m.ov.setLoading(true)
	return m.startFetch()
}

func (m tuiModel) tickCmd() tea.Cmd {
	interval := time.Duration(m.app.Config.RefreshSeconds) * time.Second
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *tuiModel) setSizes() {
	if m.winW == 0 || m.winH == 0 {
		return
	}
	_, right := m.paneWidths()
	m.viewport.Width = right - 2
	m.viewport.Height = m.winH - 8
	if m.editor != nil {
		m.editor.SetSize(m.winW-4, m.winH-10)
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		m.setSizes()
		m.refreshDetails()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		return m, tea.Batch(m.beginFetch(), m.tickCmd())
	case listsMsg:
		return m.handleLists(msg)
	case okMsg, errMsg, notesSavedMsg:
		return m.handleMessage(msg)
	case accountsMsg, connectDoneMsg:
		return m.updateAccounts(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateNotes:
		return m.updateNotes(msg)
	case stateLists:
		return m.updateLists(msg)
	case stateAccounts:
		return m.updateAccounts(msg)
	default:
		return m.updateOverview(msg)
	}
}

// handleLists applies a finished fetch. Sources that failed keep the lists
// they showed before; the snapshot is only rewritten when something loaded.
func (m tuiModel) handleLists(msg listsMsg) (tea.Model, tea.Cmd) {
	m.fetching = false
	m.ov.loading = false
	fresh, err := source.Flatten(msg.batches)
	if err != nil {
		logger.WithComponent("tui").Warn("refresh failed", "error", err)
		m.status = "Refresh failed: " + firstLine(err.Error())
	} else if strings.HasPrefix(m.status, "Refresh failed") {
		m.status = ""
	}
	merged := source.Merge(m.ov.raw, msg.batches)
	m.ov.setLists(merged, m.app.Config.Preferences())
	var cmd tea.Cmd
	if err == nil || len(fresh) > 0 {
		cmd = m.saveSnapshotCmd(merged)
	}
	m.refreshDetails()
	return m, cmd
}

func (m tuiModel) saveSnapshotCmd(lists []overview.List) tea.Cmd {
	path := m.app.SnapshotPath
	now := m.app.Now()
	return func() tea.Msg {
		if err := cache.Save(path, lists, now); err != nil {
			logger.WithComponent("tui").Warn("snapshot save failed", "error", err)
		}
		return nil
	}
}

func (m tuiModel) updateOverview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Down):
		m.ov.move(1)
	case key.Matches(keyMsg, keys.Up):
		m.ov.move(-1)
	case key.Matches(keyMsg, keys.Enter):
		m.ov.activate()
	case key.Matches(keyMsg, keys.Back):
		if !m.ov.back() {
			m.status = "Already at the start"
		}
	case key.Matches(keyMsg, keys.CollapseAll):
		m.ov.collapseAll()
	case key.Matches(keyMsg, keys.ExpandAll):
		m.ov.expandAll()
	case key.Matches(keyMsg, keys.CloseList):
		m.ov.closeCurrentList()
	case key.Matches(keyMsg, keys.EmptySort):
		return m.toggleEmptySort()
	case key.Matches(keyMsg, keys.Complete):
		return m, m.completeCmd()
	case key.Matches(keyMsg, keys.Notes):
		return m.openNotes()
	case key.Matches(keyMsg, keys.Lists):
		m.lists = newListsModal(m.ov.raw, m.app.Config)
		m.state = stateLists
		return m, nil
	case key.Matches(keyMsg, keys.Accounts):
		m.state = stateAccounts
		return m, m.loadAccountsCmd()
	case key.Matches(keyMsg, keys.Refresh):
		m.status = ""
		return m, m.beginFetch()
	case key.Matches(keyMsg, keys.PageDown), key.Matches(keyMsg, keys.PageUp):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	default:
		return m, nil
	}
	m.refreshDetails()
	return m, nil
}

func (m tuiModel) toggleEmptySort() (tea.Model, tea.Cmd) {
	cfg := m.app.Config
	cfg.Overview.AutomaticEmptySort = !cfg.Overview.AutomaticEmptySort
	m.ov.rearrange(cfg.Preferences())
	if err := m.app.SaveConfig(); err != nil {
		m.status = err.Error()
	} else if cfg.Overview.AutomaticEmptySort {
		m.status = "Empty lists sort last"
	} else {
		m.status = "Empty lists keep their place"
	}
	m.refreshDetails()
	return m, nil
}

// completeCmd completes the task or subtask under the cursor and refreshes.
func (m *tuiModel) completeCmd() tea.Cmd {
	r, ok := m.ov.current()
	if !ok || r.item == nil || r.item.Kind != overview.KindTask {
		m.status = "Only tasks can be completed"
		return nil
	}
	if m.app.Tasks == nil {
		m.status = m.app.requireGoogle().Error()
		return nil
	}
	tasks := m.app.Tasks
	listID := r.item.Task.ListID
	taskID, title := r.item.Task.ID, r.item.Task.Title
	if r.subtask != nil {
		if r.subtask.Completed {
			m.status = "Subtask already completed"
			return nil
		}
		taskID, title = r.subtask.ID, r.subtask.Title
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if err := tasks.Complete(ctx, listID, taskID); err != nil {
			return errMsg{err: err}
		}
		return okMsg{msg: fmt.Sprintf("✅ Completed %q", title)}
	}
}

func (m tuiModel) openNotes() (tea.Model, tea.Cmd) {
	r, ok := m.ov.current()
	if !ok || r.item == nil || r.item.Kind != overview.KindTask {
		m.status = "Only tasks have notes"
		return m, nil
	}
	if m.app.Tasks == nil {
		m.status = m.app.requireGoogle().Error()
		return m, nil
	}
	target := notesTarget{listID: r.item.Task.ListID, taskID: r.item.Task.ID, title: r.item.Task.Title}
	notes := r.item.Task.Notes
	if r.subtask != nil {
		target.taskID, target.title = r.subtask.ID, r.subtask.Title
		notes = r.subtask.Notes
	}
	m.notes = target
	m.editor = editor.New(notes)
	m.state = stateNotes
	m.setSizes()
	return m, nil
}

func (m tuiModel) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.editor.Dirty() {
				m.status = "Notes discarded"
			}
			m.state = stateOverview
			m.editor = nil
			return m, nil
		case "ctrl+s":
			return m, m.saveNotesCmd()
		}
	}
	return m, m.editor.Update(msg)
}

func (m tuiModel) saveNotesCmd() tea.Cmd {
	tasks := m.app.Tasks
	target := m.notes
	notes := m.editor.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if err := tasks.SaveNotes(ctx, target.listID, target.taskID, notes); err != nil {
			return errMsg{err: err}
		}
		return notesSavedMsg{}
	}
}

func (m tuiModel) handleMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case okMsg:
		m.status = msg.msg
		return m, m.beginFetch()
	case notesSavedMsg:
		if m.editor != nil {
			m.editor.MarkSaved()
		}
		m.status = "✅ Notes saved"
		return m, m.beginFetch()
	case errMsg:
		logger.WithComponent("tui").Warn("action failed", "error", msg.err)
		m.status = firstLine(msg.err.Error())
	}
	return m, nil
}

// refreshDetails re-renders the detail pane for the current selection.
func (m *tuiModel) refreshDetails() {
	d := m.ov.detail()
	opts := details.Options{
		Width:    m.viewport.Width,
		Location: m.app.Location,
		Now:      m.app.Now(),
	}
	if d.Kind == overview.DetailTask {
		opts.Link = route.Format(d.Selection)
	}
	m.viewport.SetContent(details.Render(d, opts))
}

func (m tuiModel) View() string {
	padding := lipgloss.NewStyle().Padding(1, 2)
	status := ""
	if m.status != "" {
		status = "\n\n" + gray(wrapText(m.status, m.winW-4))
	}

	switch m.state {
	case stateNotes:
		help := gray("ctrl+s: save • esc: back • " + toolbar.Help())
		return padding.Render(renderHeader("Notes · "+m.notes.title) + "\n\n" + toolbar.View(m.editor, "") + "\n\n" + m.editor.View() + "\n\n" + help + status)
	case stateLists:
		return padding.Render(renderHeader("Edit lists") + "\n\n" + m.lists.View() + status)
	case stateAccounts:
		return padding.Render(renderHeader("Accounts") + "\n\n" + m.accounts.View(m.winW-4) + status)
	default:
		title := "Daily overview"
		if m.fetching {
			title += " " + m.spinner.View()
		}
		help := gray(helpLine(keys.Enter, keys.Complete, keys.Notes, keys.CollapseAll, keys.ExpandAll, keys.CloseList, keys.EmptySort, keys.Lists, keys.Accounts, keys.Refresh, keys.Back, keys.Quit))
		return padding.Render(renderHeader(title) + "\n\n" + m.splitPane(m.accordionView(), m.viewport.View()) + "\n\n" + help + status)
	}
}

func (m tuiModel) accordionView() string {
	rows := m.ov.rows()
	if len(rows) == 0 {
		if m.fetching {
			return gray("Loading…")
		}
		return gray("No lists")
	}
	sel := m.ov.selection()
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		line := renderRow(r, m.ov.expanded.IsOpen(r.list.ID), r.kind != rowList && r.selection() == sel)
		if i == m.ov.cursor {
			line = selectedRowStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderRow(r row, open, selected bool) string {
	switch r.kind {
	case rowList:
		arrow := "▸"
		if open {
			arrow = "▾"
		}
		count := mutedRowStyle.Render(fmt.Sprintf("(%d)", len(r.list.Items)))
		return listRowStyle.Render(arrow+" "+r.list.Name) + " " + count
	case rowSubtask:
		box := "○"
		if r.subtask.Completed {
			box = "●"
		}
		text := "    " + box + " " + r.subtask.Title
		if selected {
			return selectedRowStyle.Render(text)
		}
		return text
	default:
		text := "  " + r.item.Title()
		if r.item.Kind == overview.KindTask && r.item.Task.HasDue {
			text += " " + mutedRowStyle.Render(r.item.Task.Due.Format("Jan 2"))
		}
		if selected {
			return selectedRowStyle.Render(text)
		}
		return text
	}
}

func renderHeader(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("taskdeck") + " · " + lipgloss.NewStyle().Bold(true).Render(title)
}

func (m tuiModel) paneWidths() (int, int) {
	width := m.winW - 4
	if width < 60 {
		return width, width
	}
	leftWidth := width * 2 / 5
	if leftWidth < 32 {
		leftWidth = 32
	}
	return leftWidth, width - leftWidth - 2
}

func (m tuiModel) splitPane(left, right string) string {
	width := m.winW - 4
	if width < 60 {
		return left
	}
	leftWidth, rightWidth := m.paneWidths()
	leftPane := lipgloss.NewStyle().Width(leftWidth).Render(left)
	rightPane := lipgloss.NewStyle().Width(rightWidth).PaddingLeft(2).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " …"
	}
	return text
}
