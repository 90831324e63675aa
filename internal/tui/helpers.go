package tui

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// urlRe matches http/https URLs in message text.
var urlRe = regexp.MustCompile(`https?://[^\s<>\[\]()]+`)

// formatMessageTime renders a message timestamp for display. Messages
// from today show wall-clock time only; older ones get a numeric
// day.month prefix. The format is fixed, independent of system locale.
func formatMessageTime(t, now time.Time) string {
	y1, mo1, d1 := t.Date()
	y2, mo2, d2 := now.Date()
	if y1 == y2 && mo1 == mo2 && d1 == d2 {
		return t.Format("15:04")
	}
	return t.Format("02.01 15:04")
}

// firstURL returns the first http/https URL in s, or "".
func firstURL(s string) string {
	return urlRe.FindString(s)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padLines writes blank lines to fill dead space above sparse message lists.
func padLines(n int, b *strings.Builder) {
	for i := 0; i < n; i++ {
		b.WriteByte('\n')
	}
}

// hardWrap scans each line and hard-breaks any that exceed width at the
// rune boundary. This handles long tokens (like URLs) that lipgloss
// word-wrap can't break.
func hardWrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		if lipgloss.Width(line) <= width {
			result = append(result, line)
			continue
		}
		runes := []rune(line)
		for len(runes) > 0 {
			end := len(runes)
			for end > 0 && lipgloss.Width(string(runes[:end])) > width {
				end--
			}
			if end == 0 {
				end = 1 // at least one rune per line to avoid infinite loop
			}
			result = append(result, string(runes[:end]))
			runes = runes[end:]
		}
	}
	return strings.Join(result, "\n")
}
