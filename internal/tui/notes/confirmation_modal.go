package notes

import (
	tea "github.com/charmbracelet/bubbletea"

	"keepnotes/internal/tui/theme"
)

var (
	confirmTitleStyle = theme.ModalTitle
	confirmYesStyle   = theme.Error
	confirmNoStyle    = theme.Ok
)

// ConfirmationModal displays a yes/no question about one note.
type ConfirmationModal struct {
	NoteID  string
	Message string
	Details string
	Width   int
}

// ConfirmationResultMsg is sent when the user answers the modal.
type ConfirmationResultMsg struct {
	NoteID    string
	Confirmed bool
}

func NewConfirmationModal(noteID, message, details string, width int) *ConfirmationModal {
	return &ConfirmationModal{
		NoteID:  noteID,
		Message: message,
		Details: details,
		Width:   width,
	}
}

// NewDeleteConfirmation asks before a note is destroyed.
func NewDeleteConfirmation(noteID, title string) *ConfirmationModal {
	return NewConfirmationModal(noteID,
		"Delete this note? This action cannot be undone.",
		title, 60)
}

// Update handles key events. Anything but y/enter/n/esc is ignored.
func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	id := m.NoteID
	switch msg.String() {
	case "y", "enter":
		return func() tea.Msg { return ConfirmationResultMsg{NoteID: id, Confirmed: true} }
	case "n", "esc":
		return func() tea.Msg { return ConfirmationResultMsg{NoteID: id} }
	}
	return nil
}

func (m *ConfirmationModal) View() string {
	content := confirmTitleStyle.Render(m.Message) + "\n"
	if m.Details != "" {
		content += "\n" + m.Details + "\n"
	}
	content += "\n"
	content += confirmYesStyle.Render("[y]") + " Delete  "
	content += confirmNoStyle.Render("[n/esc]") + " Cancel"

	return theme.ModalBox.Width(m.Width).Render(content)
}
