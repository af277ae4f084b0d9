package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpSectionStyle = theme.Title
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpDismissStyle = theme.Muted
)

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpSectionStyle.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + helpKeyStyle.Width(14).Render(bind.Key) + helpDescStyle.Render(bind.Desc) + "\n")
		}
	}
	b.WriteString("\n" + helpDismissStyle.Render("Press any key to close"))

	box := theme.ModalBox.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
