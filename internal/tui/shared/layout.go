package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CenterWithBottomHints renders content vertically centered in the available
// height, with hint text pinned to the very bottom line.
func CenterWithBottomHints(content, hints string, height int) string {
	content = strings.TrimRight(content, "\n")
	hints = strings.TrimRight(hints, "\n")

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}
	hintLines := strings.Split(hints, "\n")

	totalUsed := len(contentLines) + len(hintLines)
	if totalUsed >= height {
		if content == "" {
			return hints
		}
		return content + "\n" + hints
	}

	gap := height - totalUsed
	topPad := gap / 2
	bottomPad := gap - topPad

	lines := make([]string, 0, height)
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, contentLines...)
	for i := 0; i < bottomPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, hintLines...)

	return strings.Join(lines, "\n")
}

// TopWithBottomHints keeps content at the top and pins hints to the last
// line, padding or cutting content to fit height.
func TopWithBottomHints(content, hints string, height int) string {
	content = strings.TrimRight(content, "\n")
	hintLines := strings.Split(strings.TrimRight(hints, "\n"), "\n")

	room := height - len(hintLines)
	if room < 0 {
		room = 0
	}
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > room {
		lines = lines[:room]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, hintLines...), "\n")
}

// Truncate cuts s to width display cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
