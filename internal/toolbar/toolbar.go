// Package toolbar renders the formatting toolbar shown above the notes
// editor and maps its buttons and shortcuts to editor commands. It keeps no
// state of its own: every render reads the editor's current snapshot.
package toolbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextFormatting reports which inline marks are active at the cursor.
type TextFormatting struct {
	StrongActive    bool
	EmActive        bool
	UnderlineActive bool
	StrikeActive    bool
	CodeActive      bool
}

// ListState reports which list type the cursor line belongs to.
type ListState struct {
	OrderedListActive bool
	BulletListActive  bool
}

type Mark int

const (
	MarkStrong Mark = iota
	MarkEm
	MarkUnderline
	MarkStrike
	MarkCode
)

type ListKind int

const (
	OrderedList ListKind = iota
	BulletList
)

// Editor is the slice of the notes editor the toolbar needs. The state
// getters report false when the editor has nothing to report yet.
type Editor interface {
	TextFormattingState() (TextFormatting, bool)
	ListState() (ListState, bool)
	ToggleMark(Mark)
	ToggleList(ListKind)
}

// Command mutates the editor's current state.
type Command func(Editor)

func toggleMark(mark Mark) Command {
	return func(ed Editor) { ed.ToggleMark(mark) }
}

func toggleList(kind ListKind) Command {
	return func(ed Editor) { ed.ToggleList(kind) }
}

type Button struct {
	Icon          string
	ShortcutLabel string
	Shortcut      string
	Keys          []string
	// DividerAfter draws a separator after the button.
	DividerAfter bool
	IsActive     func(TextFormatting, ListState) bool
	Action       Command
}

var buttons = []Button{
	{
		Icon: "B", ShortcutLabel: "Bold", Shortcut: "Ctrl+B", Keys: []string{"ctrl+b"},
		IsActive: func(f TextFormatting, _ ListState) bool { return f.StrongActive },
		Action:   toggleMark(MarkStrong),
	},
	{
		Icon: "I", ShortcutLabel: "Italic", Shortcut: "Ctrl+I", Keys: []string{"ctrl+i", "alt+i"},
		IsActive: func(f TextFormatting, _ ListState) bool { return f.EmActive },
		Action:   toggleMark(MarkEm),
	},
	{
		Icon: "U", ShortcutLabel: "Underline", Shortcut: "Ctrl+U", Keys: []string{"ctrl+u"},
		IsActive: func(f TextFormatting, _ ListState) bool { return f.UnderlineActive },
		Action:   toggleMark(MarkUnderline),
	},
	{
		Icon: "S", ShortcutLabel: "Strikethrough", Shortcut: "Ctrl+D", Keys: []string{"ctrl+d"},
		DividerAfter: true,
		IsActive:     func(f TextFormatting, _ ListState) bool { return f.StrikeActive },
		Action:       toggleMark(MarkStrike),
	},
	{
		Icon: "1.", ShortcutLabel: "Ordered list", Shortcut: "Ctrl+Shift+9", Keys: []string{"ctrl+shift+9", "alt+9"},
		IsActive: func(_ TextFormatting, l ListState) bool { return l.OrderedListActive },
		Action:   toggleList(OrderedList),
	},
	{
		Icon: "•", ShortcutLabel: "Bulleted list", Shortcut: "Ctrl+Shift+8", Keys: []string{"ctrl+shift+8", "alt+8"},
		DividerAfter: true,
		IsActive:     func(_ TextFormatting, l ListState) bool { return l.BulletListActive },
		Action:       toggleList(BulletList),
	},
	{
		Icon: "</>", ShortcutLabel: "Code", Shortcut: "Ctrl+E", Keys: []string{"ctrl+e"},
		IsActive: func(f TextFormatting, _ ListState) bool { return f.CodeActive },
		Action:   toggleMark(MarkCode),
	},
}

// Buttons returns the toolbar's buttons in display order.
func Buttons() []Button {
	out := make([]Button, len(buttons))
	copy(out, buttons)
	return out
}

// Dispatch runs the command bound to key and reports whether one matched.
func Dispatch(ed Editor, key string) bool {
	if ed == nil {
		return false
	}
	for _, b := range buttons {
		for _, k := range b.Keys {
			if k == key {
				b.Action(ed)
				return true
			}
		}
	}
	return false
}

// Press runs the button at index, as a click would.
func Press(ed Editor, index int) bool {
	if ed == nil || index < 0 || index >= len(buttons) {
		return false
	}
	buttons[index].Action(ed)
	return true
}

// Active reports the pressed state of every button, in display order. It
// returns false when either snapshot is unavailable.
func Active(ed Editor) ([]bool, bool) {
	if ed == nil {
		return nil, false
	}
	formatting, ok := ed.TextFormattingState()
	if !ok {
		return nil, false
	}
	lists, ok := ed.ListState()
	if !ok {
		return nil, false
	}
	active := make([]bool, len(buttons))
	for i, b := range buttons {
		active[i] = b.IsActive(formatting, lists)
	}
	return active, true
}

var (
	buttonStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("69"))
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	containerStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("238"))
)

// View draws the toolbar, or nothing when the editor has no state to show.
// rightContent is placed after the buttons.
func View(ed Editor, rightContent string) string {
	active, ok := Active(ed)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(buttons)*2+1)
	for i, b := range buttons {
		style := buttonStyle
		if active[i] {
			style = activeStyle
		}
		parts = append(parts, style.Render(b.Icon))
		if b.DividerAfter {
			parts = append(parts, dividerStyle.Render("│"))
		}
	}
	if rightContent != "" {
		parts = append(parts, "  "+rightContent)
	}
	return containerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

// Help lists the shortcuts, one "label shortcut" pair per button.
func Help() string {
	pairs := make([]string, 0, len(buttons))
	for _, b := range buttons {
		pairs = append(pairs, strings.ToLower(b.ShortcutLabel)+": "+strings.ToLower(b.Shortcut))
	}
	return strings.Join(pairs, " • ")
}
