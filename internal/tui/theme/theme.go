package theme

import (
	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/notes/data"
)

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 plus one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")   // dim
	BorderFocused = lipgloss.Color("15")
)

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Match   = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Section = lipgloss.NewStyle().Bold(true).Foreground(TextMuted).MarginLeft(1)
	Pin     = lipgloss.NewStyle().Foreground(Warning)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	SearchPrompt = lipgloss.NewStyle().Bold(true).Foreground(Secondary)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
)

// NoteColor is the border color a note's card is drawn with.
func NoteColor(c data.Color) lipgloss.Color {
	switch c {
	case data.ColorYellow:
		return Warning
	case data.ColorBlue:
		return Primary
	case data.ColorGreen:
		return Success
	}
	return Border
}

// CardStyle returns the card frame for a note, highlighted when selected.
func CardStyle(c data.Color, selected bool) lipgloss.Style {
	s := Card.BorderForeground(NoteColor(c))
	if selected {
		s = s.Border(lipgloss.ThickBorder()).BorderForeground(BorderFocused)
		if c != data.ColorDefault {
			s = s.BorderForeground(NoteColor(c))
		}
	}
	return s
}
