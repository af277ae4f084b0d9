package messages

import tea "github.com/charmbracelet/bubbletea"

// Mode is what the root model is currently showing on top of the grid.
type Mode int

const (
	ModeGrid Mode = iota
	ModeSearch
	ModeEditor
	ModeConfirmDelete
	ModeQuickOpen
	ModeReader
)

// OpenNoteMsg asks the root model to open a note in the editor.
type OpenNoteMsg struct {
	ID string
}

// DebounceFireMsg delivers a scheduled editor callback to the update loop.
type DebounceFireMsg struct {
	ID int
}

// StorageChangedMsg signals that the blob changed on disk.
type StorageChangedMsg struct{}

// StatusMsg sets the transient status line.
type StatusMsg struct {
	Text  string
	Error bool
}

// ClearStatusMsg clears the status line if it still shows the message with
// the given sequence number.
type ClearStatusMsg struct {
	Seq int
}

func OpenNote(id string) tea.Cmd {
	return func() tea.Msg {
		return OpenNoteMsg{ID: id}
	}
}
