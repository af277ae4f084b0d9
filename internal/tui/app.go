package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keepnotes/internal/config"
	"keepnotes/internal/editor"
	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/query"
	"keepnotes/internal/notes/service"
	notesview "keepnotes/internal/tui/notes"
	"keepnotes/internal/tui/shared"
	"keepnotes/internal/tui/theme"
)

const statusTimeout = 3 * time.Second

// AppModel is the root model. It owns the editor session and routes keys
// to whichever overlay is on top of the card grid.
type AppModel struct {
	svc     service.NoteService
	storage data.Storage
	session *editor.Session
	sched   *tickScheduler
	changes <-chan struct{}

	mode      Mode
	grid      notesview.GridModel
	search    textinput.Model
	editor    notesview.EditorModel
	quickOpen notesview.QuickOpenModel
	reader    notesview.ReaderModel
	confirm   *notesview.ConfirmationModal

	showHelp  bool
	status    string
	statusErr bool
	statusSeq int
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model. changes may be nil when
// the backend is not watched.
func NewAppModel(cfg *config.Config, svc service.NoteService, storage data.Storage, changes <-chan struct{}) AppModel {
	sched := newTickScheduler()
	session := editor.NewSession(svc, sched,
		editor.WithDebounce(cfg.Debounce()),
		editor.WithFlushOnClose(cfg.FlushOnClose),
	)

	search := textinput.New()
	search.Placeholder = "Search notes"
	search.Prompt = ""
	search.CharLimit = 128

	m := AppModel{
		svc:     svc,
		storage: storage,
		session: session,
		sched:   sched,
		changes: changes,
		mode:    ModeGrid,
		grid:    notesview.NewGridModel(),
		search:  search,
		editor:  notesview.NewEditorModel(session),
	}
	m.refresh()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		<-changes
		return StorageChangedMsg{}
	}
}

// refresh re-derives the grid from the store and the search box.
func (m *AppModel) refresh() {
	q := m.search.Value()
	m.grid.SetView(query.DeriveView(m.svc.List(), q), q)
}

func (m *AppModel) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// checkSave surfaces a failed write in the status bar.
func (m *AppModel) checkSave() tea.Cmd {
	if err := m.svc.LastSaveError(); err != nil {
		return m.setStatus("Save failed: "+err.Error(), true)
	}
	return nil
}

func (m *AppModel) openEditor(id string) tea.Cmd {
	if err := m.session.Open(id); err != nil {
		logs.Logger.Printf("Error opening note %s: %v", id, err)
		return m.setStatus("Note no longer exists", true)
	}
	m.mode = ModeEditor
	m.editor.SetSize(m.width, m.height)
	m.refresh()
	return tea.Batch(m.editor.Load(), m.checkSave())
}

func (m *AppModel) openNew() tea.Cmd {
	n, err := m.session.OpenNew()
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.mode = ModeEditor
	m.editor.SetSize(m.width, m.height)
	m.refresh()
	m.grid.Select(n.ID)
	return tea.Batch(m.editor.Load(), m.checkSave())
}

func (m *AppModel) closeEditor() tea.Cmd {
	if !m.session.IsOpen() {
		m.mode = ModeGrid
		return nil
	}
	id := m.session.NoteID()
	removed := m.session.Close()
	m.mode = ModeGrid

	var cmds []tea.Cmd
	m.refresh()
	if !removed {
		m.grid.Select(id)
	} else {
		cmds = append(cmds, m.setStatus("Empty note discarded", false))
	}
	cmds = append(cmds, m.checkSave())
	return tea.Batch(cmds...)
}

func (m *AppModel) yank(n data.Note) tea.Cmd {
	content := n.Content
	return func() tea.Msg {
		if err := clipboard.WriteAll(content); err != nil {
			return StatusMsg{Text: "Copy failed: " + err.Error(), Error: true}
		}
		return StatusMsg{Text: "Copied note content"}
	}
}

// handleStorageChanged reloads at once, even with the editor open. The
// session commits its working copy by id, so a reload underneath it only
// loses the open note if that note was removed on disk.
func (m AppModel) handleStorageChanged() (tea.Model, tea.Cmd) {
	next := waitForChange(m.changes)
	if fs, ok := m.storage.(*data.FileStorage); ok && !fs.ChangedOnDisk() {
		return m, next
	}
	m.svc.Reload()
	logs.Logger.Printf("Reloaded %d notes after external change", m.svc.Count())

	if m.session.IsOpen() {
		if _, ok := m.svc.Get(m.session.NoteID()); !ok {
			m.session.Close()
			m.mode = ModeGrid
			m.refresh()
			cmd := m.setStatus("The open note was deleted outside keepnotes", true)
			return m, tea.Batch(next, cmd)
		}
	}
	m.refresh()
	cmd := m.setStatus("Reloaded notes changed on disk", false)
	return m, tea.Batch(next, cmd)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.grid.SetSize(msg.Width, m.gridHeight())
		m.search.Width = msg.Width - 4
		m.editor.SetSize(msg.Width, msg.Height)
		m.quickOpen.SetSize(msg.Width, msg.Height)
		if m.mode == ModeReader {
			m.reader.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case DebounceFireMsg:
		if m.sched.Fire(msg.ID) {
			m.refresh()
			cmd := m.checkSave()
			return m, cmd
		}
		return m, nil

	case StorageChangedMsg:
		return m.handleStorageChanged()

	case StatusMsg:
		cmd := m.setStatus(msg.Text, msg.Error)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case OpenNoteMsg:
		cmd := m.openEditor(msg.ID)
		return m, tea.Batch(cmd, m.sched.Drain())

	case notesview.CloseEditorMsg:
		cmd := m.closeEditor()
		return m, cmd

	case notesview.CloseOverlayMsg:
		m.mode = ModeGrid
		return m, nil

	case notesview.ConfirmationResultMsg:
		m.confirm = nil
		m.mode = ModeGrid
		if !msg.Confirmed {
			return m, nil
		}
		m.svc.Delete(msg.NoteID)
		m.refresh()
		cmd := tea.Batch(m.setStatus("Note deleted", false), m.checkSave())
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeEditor()
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// forward passes non-key messages (cursor blink, viewport) to the active
// component.
func (m AppModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeEditor:
		m.editor, cmd = m.editor.Update(msg)
		return m, tea.Batch(cmd, m.sched.Drain())
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
	case ModeQuickOpen:
		m.quickOpen, cmd = m.quickOpen.Update(msg)
	case ModeReader:
		m.reader, cmd = m.reader.Update(msg)
	}
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeEditor:
		m.editor, cmd = m.editor.Update(msg)
		return m, tea.Batch(cmd, m.sched.Drain())

	case ModeConfirmDelete:
		if m.confirm != nil {
			return m, m.confirm.Update(msg)
		}
		m.mode = ModeGrid
		return m, nil

	case ModeQuickOpen:
		m.quickOpen, cmd = m.quickOpen.Update(msg)
		return m, cmd

	case ModeReader:
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd

	case ModeSearch:
		switch msg.String() {
		case "esc":
			m.search.SetValue("")
			m.search.Blur()
			m.mode = ModeGrid
			m.refresh()
			return m, nil
		case "enter", "down":
			m.search.Blur()
			m.mode = ModeGrid
			return m, nil
		}
		m.search, cmd = m.search.Update(msg)
		m.refresh()
		return m, cmd
	}

	return m.handleGridKey(msg)
}

func (m AppModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.grid.Selected()

	switch {
	case key.Matches(msg, notesview.Grid.Quit):
		return m, tea.Quit

	case key.Matches(msg, notesview.Grid.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, notesview.Grid.New):
		cmd := m.openNew()
		return m, tea.Batch(cmd, m.sched.Drain())

	case key.Matches(msg, notesview.Grid.Edit):
		if hasSelection {
			cmd := m.openEditor(selected.ID)
			return m, tea.Batch(cmd, m.sched.Drain())
		}

	case key.Matches(msg, notesview.Grid.Pin):
		if hasSelection {
			m.svc.TogglePin(selected.ID)
			m.refresh()
			m.grid.Select(selected.ID)
			cmd := m.checkSave()
			return m, cmd
		}

	case key.Matches(msg, notesview.Grid.Delete):
		if hasSelection {
			m.confirm = notesview.NewDeleteConfirmation(selected.ID, data.DisplayTitle(selected))
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, notesview.Grid.Search):
		m.mode = ModeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, notesview.Grid.QuickOpen):
		m.quickOpen = notesview.NewQuickOpenModel(m.svc.List())
		m.quickOpen.SetSize(m.width, m.height)
		m.mode = ModeQuickOpen
		return m, m.quickOpen.Init()

	case key.Matches(msg, notesview.Grid.Read):
		if hasSelection {
			m.reader = notesview.NewReaderModel(selected, m.width, m.height)
			m.mode = ModeReader
		}

	case key.Matches(msg, notesview.Grid.Yank):
		if hasSelection {
			return m, m.yank(selected)
		}

	case msg.String() == "esc" && m.search.Value() != "":
		m.search.SetValue("")
		m.refresh()

	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}
	return m, nil
}

// gridHeight leaves room for the header line and the status bar.
func (m AppModel) gridHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return shared.RenderHelpPopup(notesview.HelpSections(), m.width, m.height)
	}

	switch m.mode {
	case ModeEditor:
		return m.editor.View()
	case ModeQuickOpen:
		return m.quickOpen.View()
	case ModeReader:
		return m.reader.View()
	case ModeConfirmDelete:
		if m.confirm != nil {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View(),
				lipgloss.WithWhitespaceChars(" "))
		}
	}

	grid := lipgloss.NewStyle().Height(m.gridHeight()).MaxHeight(m.gridHeight()).Render(m.grid.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", grid, m.renderStatusBar())
}

func (m AppModel) renderHeader() string {
	if m.mode == ModeSearch || m.search.Value() != "" {
		return theme.SearchPrompt.Render(" / ") + m.search.View()
	}
	return theme.Title.Render(" keepnotes") + theme.Muted.Render(fmt.Sprintf("  %d notes", m.svc.Count()))
}

func (m AppModel) renderStatusBar() string {
	var text string
	switch {
	case m.status != "" && m.statusErr:
		text = theme.Error.Render(m.status)
	case m.status != "":
		text = theme.Ok.Render(m.status)
	case m.mode == ModeSearch:
		text = theme.HelpHint.Render("[enter] done  [esc] clear")
	default:
		text = theme.HelpHint.Render("n:new  enter:edit  p:pin  D:delete  /:search  ctrl+p:open  v:read  y:copy  ?:help  q:quit")
	}
	return theme.StatusBar.Width(m.width).Render(text)
}
