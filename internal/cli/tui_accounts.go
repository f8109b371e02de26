package cli

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/accounts"
	"taskdeck/internal/logger"
)

type accountsScreen struct {
	items  []accounts.Account
	cursor int
	busy   bool
}

type accountsMsg struct {
	items []accounts.Account
}

type connectDoneMsg struct {
	provider accounts.Provider
	err      error
}

func (m tuiModel) loadAccountsCmd() tea.Cmd {
	checker := m.app.Accounts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return accountsMsg{items: checker.Status(ctx)}
	}
}

// connectCmd hands the terminal to `taskdeck accounts connect`, which runs
// the provider's own login flow.
func connectCmd(provider accounts.Provider) tea.Cmd {
	// #nosec G204 -- re-executes this binary with a fixed subcommand
	c := exec.Command(os.Args[0], "accounts", "connect", string(provider))
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return connectDoneMsg{provider: provider, err: err}
	})
}

func (m tuiModel) updateAccounts(msg tea.Msg) (tea.Model, tea.Cmd) {
	a := &m.accounts
	switch msg := msg.(type) {
	case accountsMsg:
		a.items = msg.items
		a.busy = false
		if a.cursor >= len(a.items) {
			a.cursor = 0
		}
		return m, nil
	case connectDoneMsg:
		a.busy = false
		if msg.err != nil {
			logger.WithComponent("tui").Warn("connect failed", "provider", msg.provider, "error", msg.err)
			m.status = "Connect failed: " + msg.err.Error()
			return m, m.loadAccountsCmd()
		}
		m.status = "✅ Connected " + string(msg.provider)
		m.app.connectSources(context.Background())
		return m, tea.Batch(m.loadAccountsCmd(), m.beginFetch())
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "A", "q":
			m.state = stateOverview
		case "j", "down", "l", "right":
			if a.cursor < len(a.items)-1 {
				a.cursor++
			}
		case "k", "up", "h", "left":
			if a.cursor > 0 {
				a.cursor--
			}
		case "enter":
			if a.busy || a.cursor >= len(a.items) {
				return m, nil
			}
			acc := a.items[a.cursor]
			if acc.Connected {
				m.status = acc.Name + " is already connected"
				return m, nil
			}
			a.busy = true
			return m, connectCmd(acc.Provider)
		}
	}
	return m, nil
}

func (s accountsScreen) View(width int) string {
	if len(s.items) == 0 {
		return gray("Checking accounts…")
	}
	if width > 60 {
		width = 60
	}
	cards := make([]string, 0, len(s.items))
	for i, acc := range s.items {
		cards = append(cards, accounts.Render(acc, i == s.cursor, width))
	}
	return strings.Join(cards, "\n") + "\n\n" + gray("enter: connect • j/k: move • esc: back")
}
