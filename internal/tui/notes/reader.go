package notes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
	"keepnotes/internal/tui/messages"
	"keepnotes/internal/tui/shared"
	"keepnotes/internal/tui/theme"
)

// ReaderModel shows one note rendered as Markdown.
type ReaderModel struct {
	note     data.Note
	viewport viewport.Model
	width    int
	height   int
}

func NewReaderModel(n data.Note, width, height int) ReaderModel {
	m := ReaderModel{note: n, viewport: viewport.New(width, height)}
	m.SetSize(width, height)
	return m
}

func (m *ReaderModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(renderMarkdown(m.note, width))
}

// NoteID is the note being read.
func (m ReaderModel) NoteID() string { return m.note.ID }

func renderMarkdown(n data.Note, width int) string {
	source := "# " + data.DisplayTitle(n) + "\n\n" + n.Content

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		logs.Logger.Printf("Reader: glamour init failed: %v", err)
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		logs.Logger.Printf("Reader: render failed: %v", err)
		return source
	}
	return out
}

func (m ReaderModel) Update(msg tea.Msg) (ReaderModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "v":
			return m, func() tea.Msg { return CloseOverlayMsg{} }
		case "e", "enter":
			return m, messages.OpenNote(m.note.ID)
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ReaderModel) View() string {
	hints := theme.HelpHint.Render("[j/k] scroll  [e] edit  [esc] back")
	pct := theme.Muted.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	footer := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hints+"  "+pct)
	return shared.TopWithBottomHints(m.viewport.View(), footer, m.height)
}
