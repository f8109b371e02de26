// Package editor is the notes editor used for task notes. It wraps a
// bubbles textarea and implements toolbar.Editor on top of markdown text.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/toolbar"
)

// Google Tasks caps notes at 8192 characters.
const notesCharLimit = 8192

type Model struct {
	textarea textarea.Model
	ready    bool
	dirty    bool
}

func New(notes string) *Model {
	ta := textarea.New()
	ta.Placeholder = "Notes"
	ta.ShowLineNumbers = false
	ta.CharLimit = notesCharLimit
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.SetValue(notes)
	ta.Focus()
	return &Model{textarea: ta, ready: true}
}

func (m *Model) SetSize(width, height int) {
	m.textarea.SetWidth(width)
	m.textarea.SetHeight(height)
}

func (m *Model) Value() string {
	return m.textarea.Value()
}

// Dirty reports whether the notes changed since New or MarkSaved.
func (m *Model) Dirty() bool {
	return m.dirty
}

func (m *Model) MarkSaved() {
	m.dirty = false
}

// Update routes toolbar shortcuts to the toolbar and everything else to the
// textarea.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && toolbar.Dispatch(m, key.String()) {
		return nil
	}
	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() != before {
		m.dirty = true
	}
	return cmd
}

func (m *Model) View() string {
	return m.textarea.View()
}

func (m *Model) cursor() (string, int) {
	row := m.textarea.Line()
	lines := strings.Split(m.textarea.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return "", 0
	}
	info := m.textarea.LineInfo()
	return lines[row], info.StartColumn + info.ColumnOffset
}

func (m *Model) TextFormattingState() (toolbar.TextFormatting, bool) {
	if !m.ready {
		return toolbar.TextFormatting{}, false
	}
	line, col := m.cursor()
	formatting, _ := Inspect(line, col)
	return formatting, true
}

func (m *Model) ListState() (toolbar.ListState, bool) {
	if !m.ready {
		return toolbar.ListState{}, false
	}
	line, col := m.cursor()
	_, lists := Inspect(line, col)
	return lists, true
}

func (m *Model) ToggleMark(mark toolbar.Mark) {
	line, col := m.cursor()
	out, newCol := ToggleMarkAt(line, col, mark)
	m.replaceLine(out, newCol)
}

func (m *Model) ToggleList(kind toolbar.ListKind) {
	row := m.textarea.Line()
	lines := strings.Split(m.textarea.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return
	}
	n := 1
	if row > 0 {
		n = NextOrderedNumber(lines[row-1])
	}
	_, col := m.cursor()
	out, delta := ToggleListLine(lines[row], kind, n)
	col += delta
	if col < 0 {
		col = 0
	}
	m.replaceLine(out, col)
}

// replaceLine swaps the cursor line for text and puts the cursor at col.
func (m *Model) replaceLine(text string, col int) {
	row := m.textarea.Line()
	lines := strings.Split(m.textarea.Value(), "\n")
	if row < 0 || row >= len(lines) || lines[row] == text {
		m.textarea.SetCursor(col)
		return
	}
	lines[row] = text
	m.textarea.SetValue(strings.Join(lines, "\n"))
	// SetValue leaves the cursor on the last line; soft wrapping can make
	// each CursorUp move less than a full line, so bound the walk.
	for steps := 0; m.textarea.Line() > row && steps < len(m.Value())+len(lines); steps++ {
		m.textarea.CursorUp()
	}
	m.textarea.SetCursor(col)
	m.dirty = true
}
