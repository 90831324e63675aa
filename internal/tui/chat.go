package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"parley/internal/browser"
	"parley/pkg/client"
	"parley/pkg/domain"
)

// cursorBlinkMsg toggles the input cursor on/off.
type cursorBlinkMsg struct{}

func cursorBlinkCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return cursorBlinkMsg{}
	})
}

// chatLoadedMsg carries the full message list from the API.
type chatLoadedMsg struct {
	messages []domain.Message
	err      error
}

// chatSentMsg carries the result of a send attempt.
type chatSentMsg struct {
	err error
}

// chatCopiedMsg carries the result of a clipboard copy.
type chatCopiedMsg struct {
	err error
}

// sessionExpiredMsg tells the App that an authenticated call hit a 401.
// The App clears the session and routes back to the login form.
type sessionExpiredMsg struct{}

func expireSession() tea.Cmd {
	return func() tea.Msg { return sessionExpiredMsg{} }
}

// chatModel is the group chat view. The list changes only on explicit
// load and send actions — there is no polling loop or push channel.
// After a successful send the full list is re-fetched; the server's
// order is authoritative and never re-sorted here.
type chatModel struct {
	client       *client.Client
	messages     []domain.Message
	draft        string
	loading      bool
	sending      bool
	errMsg       string
	status       string // transient status line (e.g. "copied")
	cursor       int    // selected message index in nav mode
	inputFocused bool
	myLogin      string
	width        int
	height       int
	animFrame    int
}

func newChatModel(c *client.Client) chatModel {
	return chatModel{
		client:       c,
		loading:      true,
		inputFocused: true,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(m.loadMessages(), cursorBlinkCmd())
}

// loadMessages fetches the entire message list.
func (m chatModel) loadMessages() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		msgs, err := c.ListMessages(context.Background())
		return chatLoadedMsg{messages: msgs, err: err}
	}
}

// sendMessage posts the draft via REST.
func (m chatModel) sendMessage(text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.SendMessage(context.Background(), text)
		return chatSentMsg{err: err}
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chatLoadedMsg:
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return m, expireSession()
			}
			m.errMsg = "could not load messages"
			m.loading = false
			return m, nil
		}
		// Replace the list wholesale; server order is authoritative.
		m.messages = msg.messages
		m.loading = false
		m.errMsg = ""
		if m.cursor >= len(m.messages) || m.cursor < 0 {
			m.cursor = len(m.messages) - 1
		}
		return m, nil

	case chatSentMsg:
		m.sending = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return m, expireSession()
			}
			// Draft stays intact so the user can retry.
			m.errMsg = "could not send message"
			return m, nil
		}
		m.draft = ""
		m.errMsg = ""
		m.loading = true
		return m, m.loadMessages()

	case chatCopiedMsg:
		if msg.err != nil {
			m.status = "copy failed"
		} else {
			m.status = "copied"
		}
		return m, nil

	case cursorBlinkMsg:
		m.animFrame++
		return m, cursorBlinkCmd()

	case tea.KeyMsg:
		m.animFrame = 0
		if m.inputFocused {
			return m.updateInput(msg)
		}
		return m.updateNav(msg)
	}

	return m, nil
}

// updateInput handles key events when the text input is focused.
func (m chatModel) updateInput(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputFocused = false
		m.status = ""
		if len(m.messages) > 0 {
			m.cursor = len(m.messages) - 1
		}
		return m, nil

	case "enter":
		if m.sending {
			return m, nil // busy flag: one in-flight send at a time
		}
		text := strings.TrimSpace(m.draft)
		if text == "" {
			return m, nil // whitespace-only draft: no request
		}
		m.sending = true
		m.errMsg = ""
		m.status = ""
		return m, m.sendMessage(text)

	default:
		m.draft = editRune(m.draft, msg.String())
		return m, nil
	}
}

// updateNav handles key events when the input is not focused: j/k move
// the message cursor, c copies the selected text, o opens its first URL.
func (m chatModel) updateNav(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.messages)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(m.messages) > 0 {
			m.cursor = len(m.messages) - 1
		}
	case "c":
		if m.cursor >= 0 && m.cursor < len(m.messages) {
			text := m.messages[m.cursor].Text
			return m, func() tea.Msg {
				return chatCopiedMsg{err: clipboard.WriteAll(text)}
			}
		}
	case "o":
		if m.cursor >= 0 && m.cursor < len(m.messages) {
			if url := firstURL(m.messages[m.cursor].Text); url != "" {
				browser.Open(url) //nolint:errcheck // best-effort browser open
			} else {
				m.status = "no link in message"
			}
		}
	case "r":
		if !m.loading {
			m.loading = true
			m.status = ""
			return m, m.loadMessages()
		}
	case "enter", "i", "/":
		m.inputFocused = true
		m.status = ""
	}
	return m, nil
}

// View renders the chat view: message log, input line, status line.
func (m chatModel) View() string {
	var b strings.Builder

	chrome := 1 // input line
	statusLine := m.statusText()
	if statusLine != "" {
		chrome++
	}
	viewportHeight := m.height - chrome
	if viewportHeight < 2 {
		viewportHeight = 2
	}

	switch {
	case m.loading && len(m.messages) == 0:
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("loading messages...") + "\n")
	case m.errMsg != "" && len(m.messages) == 0:
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
	case len(m.messages) == 0:
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("no messages yet — start the conversation") + "\n")
	default:
		b.WriteString(m.renderMessages(viewportHeight))
	}

	b.WriteString(m.renderInput())
	b.WriteByte('\n')

	if statusLine != "" {
		b.WriteString(" " + statusLine)
	}

	return b.String()
}

// statusText returns the one-line transient status below the input:
// error first, then sending progress, then copy/open feedback.
func (m chatModel) statusText() string {
	switch {
	case m.errMsg != "" && len(m.messages) > 0:
		return errorStyle.Render(m.errMsg)
	case m.sending:
		return dimStyle.Render("sending...")
	case m.status != "":
		return dimStyle.Render(m.status)
	}
	return ""
}

// renderMessages renders the log clipped to viewportHeight lines. The
// window follows the selected message: the last message pins the view
// to the bottom, moving the cursor up scrolls history.
func (m chatModel) renderMessages(viewportHeight int) string {
	now := time.Now()
	var allLines []string
	starts := make([]int, len(m.messages))
	ends := make([]int, len(m.messages))
	for i, msg := range m.messages {
		starts[i] = len(allLines)
		rendered := m.renderMessage(msg, i == m.cursor && !m.inputFocused, now)
		allLines = append(allLines, strings.Split(rendered, "\n")...)
		ends[i] = len(allLines)
	}

	total := len(allLines)
	end := total
	if m.cursor >= 0 && m.cursor < len(m.messages) && !m.inputFocused {
		end = ends[m.cursor]
		if end < viewportHeight {
			end = viewportHeight
		}
		if end > total {
			end = total
		}
	}
	start := end - viewportHeight
	if start < 0 {
		start = 0
	}

	visible := allLines[start:end]

	var b strings.Builder
	padLines(viewportHeight-len(visible), &b)
	for _, line := range visible {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderMessage renders a single message, wrapping the text to fit the
// terminal width. May return multiple newline-separated lines.
func (m chatModel) renderMessage(msg domain.Message, selected bool, now time.Time) string {
	timeStr := fmt.Sprintf("%11s", formatMessageTime(msg.CreatedAt, now))
	timePart := metaStyle.Render(timeStr)
	sep := chatSepStyle.Render(" · ")

	isSelf := msg.AuthorLogin == m.myLogin
	var namePart string
	if isSelf {
		namePart = chatSelfNameStyle.Render(msg.AuthorLogin)
	} else {
		namePart = chatNameStyle.Render(msg.AuthorLogin)
	}

	textStyle := chatTextStyle
	if isSelf {
		textStyle = chatSelfTextStyle
	}

	mark := " "
	if selected {
		mark = cursorMarkStyle.Render("▸")
	}

	// Prefix: mark + time + "  " + name + " · "
	prefixWidth := 1 + 11 + 2 + lipgloss.Width(namePart) + 3
	textWidth := m.width - prefixWidth
	if textWidth < 20 {
		textWidth = 20
	}
	wrapped := hardWrap(lipgloss.NewStyle().Width(textWidth).Render(msg.Text), textWidth)
	lines := strings.Split(wrapped, "\n")

	result := mark + timePart + "  " + namePart + sep + textStyle.Render(lines[0])
	if len(lines) > 1 {
		indent := strings.Repeat(" ", prefixWidth)
		for _, line := range lines[1:] {
			result += "\n" + indent + textStyle.Render(line)
		}
	}
	return result
}

// renderInput renders the text input line.
func (m chatModel) renderInput() string {
	placeholder := "type a message..."
	if m.sending {
		placeholder = "sending..."
	}
	return renderChatInput(m.myLogin, m.draft, placeholder, m.inputFocused && !m.sending, m.animFrame)
}

// helpKeys returns the help bar entries for the chat view.
func (m chatModel) helpKeys() string {
	if m.inputFocused {
		return helpEntry("enter", "send") + "  " +
			helpEntry("esc", "nav") + "  " +
			helpEntry("ctrl+c", "quit")
	}
	return helpEntry("j/k", "select") + "  " +
		helpEntry("c", "copy") + "  " +
		helpEntry("o", "open link") + "  " +
		helpEntry("r", "reload") + "  " +
		helpEntry("p", "profile") + "  " +
		helpEntry("enter", "type") + "  " +
		helpEntry("q", "quit")
}
