package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"parley/pkg/client"
	"parley/pkg/domain"
)

// profileLoadedMsg carries the authenticated identity from the API.
type profileLoadedMsg struct {
	user *domain.User
	err  error
}

// logoutMsg tells the App to clear the session and return to login.
// Logout is available from the profile view regardless of whether the
// fetch succeeded.
type logoutMsg struct{}

// profileModel shows the authenticated user's identity and offers
// logout.
type profileModel struct {
	client  *client.Client
	user    *domain.User
	loading bool
	errMsg  string
	width   int
	height  int
}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{client: c, loading: true}
}

func (m profileModel) Init() tea.Cmd {
	return m.loadProfile()
}

func (m profileModel) loadProfile() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		u, err := c.GetProfile(context.Background())
		return profileLoadedMsg{user: u, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return m, expireSession()
			}
			m.errMsg = "could not load profile"
			return m, nil
		}
		m.user = msg.user
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "x":
			return m, func() tea.Msg { return logoutMsg{} }
		}
	}
	return m, nil
}

func (m profileModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + selectedStyle.Render("profile") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
		b.WriteString("\n  " + metaStyle.Render("you can still sign out with x") + "\n")
	case m.user != nil:
		b.WriteString("  " + metaStyle.Render("login") + ":  " + selectedStyle.Render(m.user.Login) + "\n")
		if !m.user.CreatedAt.IsZero() {
			b.WriteString("  " + metaStyle.Render("joined") + ": " + m.user.CreatedAt.Format("02.01.2006") + "\n")
		}
	}

	return b.String()
}

// helpKeys returns the help bar entries for the profile view.
func (m profileModel) helpKeys() string {
	return helpEntry("esc", "back to chat") + "  " +
		helpEntry("x", "sign out") + "  " +
		helpEntry("q", "quit")
}
