// Package accounts describes the external accounts taskdeck reads from and
// renders the widgets used to connect them.
package accounts

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/auth"
	"taskdeck/internal/logger"
)

type Provider string

const (
	Google Provider = "google"
	GitHub Provider = "github"
)

type Account struct {
	Provider  Provider
	Name      string
	Logo      string
	Link      string
	Connected bool
	// DisplayID is shown next to the name once connected, e.g. a login.
	DisplayID string
}

// GitHubUser reports the login gh is authenticated as.
type GitHubUser interface {
	CurrentUser(ctx context.Context) (string, error)
}

// Checker resolves connection state. Google counts as connected when a token
// is stored; GitHub when gh can name the current user.
type Checker struct {
	TokenPath string
	GitHub    GitHubUser
	HasToken  func(path string) bool
}

func (c Checker) hasToken(path string) bool {
	if c.HasToken != nil {
		return c.HasToken(path)
	}
	return auth.HasToken(path)
}

// Status returns every supported account in display order.
func (c Checker) Status(ctx context.Context) []Account {
	google := Account{
		Provider:  Google,
		Name:      "Google",
		Logo:      "G",
		Link:      "https://myaccount.google.com/connections",
		Connected: c.hasToken(c.TokenPath),
	}
	gh := Account{
		Provider: GitHub,
		Name:     "GitHub",
		Logo:     "⎇",
		Link:     "https://github.com/settings/applications",
	}
	if c.GitHub != nil {
		login, err := c.GitHub.CurrentUser(ctx)
		if err != nil {
			logger.WithComponent("accounts").Debug("github not connected", "error", err)
		} else {
			gh.Connected = true
			gh.DisplayID = login
		}
	}
	return []Account{google, gh}
}

// ParseProvider maps a command argument to a Provider.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case Google, GitHub:
		return Provider(name), nil
	default:
		return "", fmt.Errorf("unknown account %q (want google or github)", name)
	}
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	cardSelectedStyle = cardStyle.BorderForeground(lipgloss.Color("69"))
	logoStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).Width(2)
	nameStyle         = lipgloss.NewStyle().Bold(true)
	idStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	connectStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
)

// Render draws one account card: logo, name and the connect button.
func Render(acc Account, selected bool, width int) string {
	label := nameStyle.Render(acc.Name)
	if acc.Connected && acc.DisplayID != "" {
		label += " " + idStyle.Render(acc.DisplayID)
	}
	button := connectStyle.Render("Connect")
	if acc.Connected {
		button = connectedStyle.Render("✓ Connected")
	}
	left := logoStyle.Render(acc.Logo) + " " + label
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return style.Render(left + fmt.Sprintf("%*s", gap, "") + button)
}
