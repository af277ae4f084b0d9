package notes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/editor"
	"keepnotes/internal/notes/data"
	"keepnotes/internal/tui/theme"
)

var (
	editorLabelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	editorHelpStyle  = theme.ModalHelp
	editorSavedStyle = theme.Muted
	editorDirtyStyle = lipgloss.NewStyle().Foreground(theme.Warning)
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldContent
)

// CloseEditorMsg is sent when the user leaves the editor.
type CloseEditorMsg struct{}

// EditorModel is the modal that drives an editor.Session. Every keystroke
// goes to the working copy; the session decides when it reaches the store.
type EditorModel struct {
	session *editor.Session
	title   textinput.Model
	content textarea.Model
	focus   editorField
	width   int
	height  int
}

func NewEditorModel(session *editor.Session) EditorModel {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Take a note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return EditorModel{
		session: session,
		title:   ti,
		content: ta,
	}
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	boxWidth := m.boxWidth()
	inner := boxWidth - theme.ModalBox.GetHorizontalFrameSize()
	m.title.Width = inner
	m.content.SetWidth(inner)

	h := height - 12
	if h < 3 {
		h = 3
	}
	if h > 20 {
		h = 20
	}
	m.content.SetHeight(h)
}

func (m EditorModel) boxWidth() int {
	w := m.width - 8
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Load fills the inputs from the session's working copy. An untitled note
// starts in the title field.
func (m *EditorModel) Load() tea.Cmd {
	n := m.session.Working()
	m.title.SetValue(n.Title)
	m.content.SetValue(n.Content)
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return m.focusField(fieldTitle)
	}
	return m.focusField(fieldContent)
}

func (m *EditorModel) focusField(f editorField) tea.Cmd {
	m.focus = f
	if f == fieldTitle {
		m.content.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.content.Focus()
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, Editor.Close):
			return m, func() tea.Msg { return CloseEditorMsg{} }
		case key.Matches(keyMsg, Editor.SwitchField):
			if m.focus == fieldTitle {
				return m, m.focusField(fieldContent)
			}
			return m, m.focusField(fieldTitle)
		case key.Matches(keyMsg, Editor.CycleColor):
			m.session.SetColor(m.session.Working().Color.Next())
			return m, nil
		case key.Matches(keyMsg, Editor.Pin):
			m.session.TogglePin()
			return m, nil
		}
		if m.focus == fieldTitle && keyMsg.Type == tea.KeyEnter {
			return m, m.focusField(fieldContent)
		}
	}

	// The inputs sanitize what they display, so only a value this message
	// actually changed is handed to the session.
	var cmd tea.Cmd
	if m.focus == fieldTitle {
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if v := m.title.Value(); v != before {
			m.session.SetTitle(v)
		}
	} else {
		before := m.content.Value()
		m.content, cmd = m.content.Update(msg)
		if v := m.content.Value(); v != before {
			m.session.SetContent(v)
		}
	}
	return m, cmd
}

func (m EditorModel) View() string {
	n := m.session.Working()

	var b strings.Builder
	header := editorLabelStyle.Render("Color: ") + lipgloss.NewStyle().Foreground(theme.NoteColor(n.Color)).Render(string(n.Color))
	if n.Pinned {
		header += "  " + theme.Pin.Render("● pinned")
	}
	if m.session.Pending() {
		header += "  " + editorDirtyStyle.Render("editing…")
	} else {
		header += "  " + editorSavedStyle.Render("saved")
	}
	b.WriteString(header + "\n\n")

	b.WriteString(theme.Bold.Render(m.title.View()) + "\n")
	b.WriteString(theme.Muted.Render(strings.Repeat("─", m.title.Width)) + "\n")
	b.WriteString(m.content.View() + "\n\n")
	b.WriteString(editorHelpStyle.Render("[tab] field  [ctrl+o] color  [ctrl+p] pin  [esc] close"))

	box := theme.ModalBox.
		BorderForeground(theme.NoteColor(n.Color)).
		Width(m.boxWidth() - theme.ModalBox.GetHorizontalBorderSize())
	if n.Color == data.ColorDefault {
		box = box.BorderForeground(theme.Primary)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}
