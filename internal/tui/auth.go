package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"parley/pkg/client"
)

// authMode selects which backend operation the form submits to.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

type authField int

const (
	fieldLogin authField = iota
	fieldPassword
	numAuthFields
)

// authResultMsg carries the outcome of a login or register attempt.
// The App intercepts the success case to persist the token and switch
// to chat; failures are routed back here.
type authResultMsg struct {
	mode authMode
	resp *client.AuthResponse
	err  error
}

// authModel is the login/register form. State machine per submit:
// idle -> submitting -> {success, failed}; failure returns to idle
// with the inputs intact.
type authModel struct {
	client     *client.Client
	mode       authMode
	fields     [numAuthFields]string
	focus      authField
	submitting bool
	errMsg     string
	info       string // transient notice, e.g. "session expired"
	width      int
	height     int
}

func newAuthModel(c *client.Client) authModel {
	return authModel{client: c}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		// Success never reaches here — the App handles it.
		m.submitting = false
		if msg.err != nil {
			m.errMsg = authErrorMessage(msg.err, msg.mode)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil // busy flag: no re-entrant submission
	}

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numAuthFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numAuthFields) % numAuthFields
	case "ctrl+t":
		// Toggle between sign-in and registration.
		if m.mode == modeLogin {
			m.mode = modeRegister
		} else {
			m.mode = modeLogin
		}
		m.errMsg = ""
	case "enter":
		if m.focus == fieldLogin {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
	default:
		key := msg.String()
		if len(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m authModel) submit() (authModel, tea.Cmd) {
	login := m.fields[fieldLogin]
	password := m.fields[fieldPassword]

	// The only client-side check: both fields present (the HTML
	// "required" analog). Everything else is the server's call.
	if login == "" || password == "" {
		m.errMsg = "login and password are required"
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	m.info = ""
	c := m.client
	mode := m.mode
	return m, func() tea.Msg {
		var resp *client.AuthResponse
		var err error
		if mode == modeRegister {
			resp, err = c.Register(context.Background(), login, password)
		} else {
			resp, err = c.Login(context.Background(), login, password)
		}
		return authResultMsg{mode: mode, resp: resp, err: err}
	}
}

// authErrorMessage picks the user-facing failure text: the server's
// message when it sent one, else a generic fallback per mode.
func authErrorMessage(err error, mode authMode) string {
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	if mode == modeRegister {
		return "could not register — try again"
	}
	return "could not sign in — check your login and password"
}

func (m authModel) View() string {
	var b strings.Builder

	title := "sign in"
	subtitle := "enter your account credentials"
	if m.mode == modeRegister {
		title = "create account"
		subtitle = "pick a login and password"
	}
	b.WriteString("\n  " + selectedStyle.Render(title) + "\n")
	b.WriteString("  " + metaStyle.Render(subtitle) + "\n\n")

	if m.info != "" {
		b.WriteString("  " + dimStyle.Render(m.info) + "\n\n")
	}

	labels := [numAuthFields]string{"login", "password"}
	for i := authField(0); i < numAuthFields; i++ {
		value := m.fields[i]
		if i == fieldPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		cursor := " "
		style := metaStyle
		if i == m.focus && !m.submitting {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		b.WriteString("  " + cursor + " " + style.Render(labels[i]) + ": " + value + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("submitting...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	}

	return b.String()
}

// helpKeys returns the help bar entries for the auth view.
func (m authModel) helpKeys() string {
	other := "register"
	if m.mode == modeRegister {
		other = "sign in"
	}
	return helpEntry("tab", "next field") + "  " +
		helpEntry("enter", "submit") + "  " +
		helpEntry("ctrl+t", other) + "  " +
		helpEntry("ctrl+c", "quit")
}
