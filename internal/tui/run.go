package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"keepnotes/internal/config"
	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/service"
)

// Run starts the full-screen interface and blocks until it exits. A file
// backend is watched so edits from other processes show up live.
func Run(cfg *config.Config, svc service.NoteService, storage data.Storage) error {
	var changes <-chan struct{}
	if fs, ok := storage.(*data.FileStorage); ok {
		ch, stop, err := data.Watch(fs.Path(), data.DefaultWatchDelay)
		if err != nil {
			logs.Logger.Printf("Watcher disabled: %v", err)
		} else {
			changes = ch
			defer stop()
		}
	}

	model := NewAppModel(cfg, svc, storage, changes)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if app, ok := final.(AppModel); ok {
		// Leaving with the editor open still runs draft cleanup.
		app.closeEditor()
	}
	return err
}
