package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"parley/pkg/client"
)

type view int

const (
	viewAuth view = iota
	viewChat
	viewProfile
)

// SessionStore is the token lifecycle contract the App depends on.
// *session.Store satisfies it.
type SessionStore interface {
	Token() string
	Save(token string) error
	Clear() error
}

// App is the root Bubbletea model. It owns view routing and the
// navigation guard: protected views are entered only with a stored
// token, and any authorization failure clears the session and routes
// back to the login form — uniformly, whichever flow observed it.
type App struct {
	client  *client.Client
	store   SessionStore
	log     zerolog.Logger
	view    view
	auth    authModel
	chat    chatModel
	profile profileModel
	myLogin string
	version string
	width   int
	height  int
	frame   int // wordmark shimmer animation frame
}

// NewApp creates the TUI application. The initial view depends on
// whether a session token is already stored.
func NewApp(c *client.Client, store SessionStore, log zerolog.Logger, version string) App {
	a := App{
		client:  c,
		store:   store,
		log:     log,
		auth:    newAuthModel(c),
		chat:    newChatModel(c),
		profile: newProfileModel(c),
		version: version,
		view:    viewAuth,
	}
	if store.Token() != "" {
		a.view = viewChat
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	if a.view == viewChat {
		cmds = append(cmds, a.chat.Init())
	}
	return tea.Batch(cmds...)
}

// appChrome is the number of lines the App reserves around the body:
// wordmark, subtitle, help bar.
const appChrome = 3

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - appChrome}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.chat, _ = a.chat.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case authResultMsg:
		if msg.err == nil && msg.resp != nil {
			if err := a.store.Save(msg.resp.Token); err != nil {
				a.log.Error().Err(err).Msg("save session token")
				a.auth.submitting = false
				a.auth.errMsg = "could not save session — try again"
				return a, nil
			}
			a.myLogin = msg.resp.Login
			return a.enterChat()
		}
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd

	case sessionExpiredMsg:
		// Unified 401 handling: clear the token wherever the failure
		// was observed, then return to the login form.
		if err := a.store.Clear(); err != nil {
			a.log.Error().Err(err).Msg("clear session token")
		}
		a.auth = newAuthModel(a.client)
		a.auth.info = "session expired — sign in again"
		a.view = viewAuth
		return a, nil

	case logoutMsg:
		if err := a.store.Clear(); err != nil {
			a.log.Error().Err(err).Msg("clear session token")
		}
		a.auth = newAuthModel(a.client)
		a.view = viewAuth
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "p":
				if a.view == viewChat {
					return a.enterProfile()
				}
			case "esc", "b":
				if a.view == viewProfile {
					return a.enterChat()
				}
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// enterChat switches to the chat view, guarding on a stored token.
// Without one, no request is issued and the login form is shown.
func (a App) enterChat() (tea.Model, tea.Cmd) {
	if a.store.Token() == "" {
		a.auth = newAuthModel(a.client)
		a.view = viewAuth
		return a, nil
	}
	a.chat = newChatModel(a.client)
	a.chat.myLogin = a.myLogin
	a.chat.width = a.width
	a.chat.height = a.height - appChrome
	a.view = viewChat
	return a, a.chat.Init()
}

// enterProfile switches to the profile view with the same guard.
func (a App) enterProfile() (tea.Model, tea.Cmd) {
	if a.store.Token() == "" {
		a.auth = newAuthModel(a.client)
		a.view = viewAuth
		return a, nil
	}
	a.profile = newProfileModel(a.client)
	a.profile.width = a.width
	a.profile.height = a.height - appChrome
	a.view = viewProfile
	return a, a.profile.Init()
}

func (a App) isEditing() bool {
	switch a.view {
	case viewAuth:
		return true
	case viewChat:
		return a.chat.inputFocused
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := centerLine(logo, a.width)

	subtitle := "group chat"
	if a.myLogin != "" {
		subtitle = "@" + a.myLogin
	}
	header += "\n" + centerLine(metaStyle.Render(subtitle), a.width)

	var body, help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		help = " " + a.auth.helpKeys()
	case viewChat:
		body = a.chat.View()
		help = " " + a.chat.helpKeys()
	case viewProfile:
		body = a.profile.View()
		help = " " + a.profile.helpKeys()
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-appChrome), "\n")

	return header + "\n" + body + "\n" + help
}

// centerLine pads s with leading spaces to center it in width columns.
func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
