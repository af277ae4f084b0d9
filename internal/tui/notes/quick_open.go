package notes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/query"
	"keepnotes/internal/tui/messages"
	"keepnotes/internal/tui/shared"
	"keepnotes/internal/tui/theme"
)

const quickOpenRows = 10

// CloseOverlayMsg dismisses the quick open palette or the read view.
type CloseOverlayMsg struct{}

// QuickOpenModel is a fuzzy title picker.
type QuickOpenModel struct {
	input   textinput.Model
	notes   []data.Note
	matches []query.Match
	cursor  int
	width   int
	height  int
}

func NewQuickOpenModel(notes []data.Note) QuickOpenModel {
	ti := textinput.New()
	ti.Placeholder = "Jump to note..."
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	m := QuickOpenModel{input: ti, notes: notes}
	m.refresh()
	return m
}

func (m *QuickOpenModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = m.boxWidth() - theme.ModalBox.GetHorizontalFrameSize() - 2
}

func (m QuickOpenModel) boxWidth() int {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	return w
}

func (m *QuickOpenModel) refresh() {
	m.matches = query.FuzzyFind(m.notes, m.input.Value())
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m QuickOpenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m QuickOpenModel) Update(msg tea.Msg) (QuickOpenModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+p":
			return m, func() tea.Msg { return CloseOverlayMsg{} }
		case "enter":
			if m.cursor < len(m.matches) {
				return m, messages.OpenNote(m.matches[m.cursor].Note.ID)
			}
			return m, nil
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m QuickOpenModel) View() string {
	inner := m.boxWidth() - theme.ModalBox.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render("Quick open") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	if len(m.matches) == 0 {
		b.WriteString(theme.Muted.Render("No matching notes") + "\n")
	}
	start := 0
	if m.cursor >= quickOpenRows {
		start = m.cursor - quickOpenRows + 1
	}
	for i := start; i < len(m.matches) && i < start+quickOpenRows; i++ {
		line := highlight(data.DisplayTitle(m.matches[i].Note), m.matches[i].MatchedIndexes, inner-2)
		if i == m.cursor {
			b.WriteString(theme.Ok.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + theme.ModalHelp.Render("[enter] open  [↑/↓] select  [esc] close"))

	box := theme.ModalBox.Width(m.boxWidth() - theme.ModalBox.GetHorizontalBorderSize())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}

// highlight renders title with the fuzzy-matched characters emphasized.
func highlight(title string, matched []int, width int) string {
	title = shared.Truncate(title, width)
	if len(matched) == 0 {
		return title
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(theme.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
