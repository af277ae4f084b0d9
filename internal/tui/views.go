package tui

import "keepnotes/internal/tui/messages"

// Re-export types from messages package for convenience
type Mode = messages.Mode

const (
	ModeGrid          = messages.ModeGrid
	ModeSearch        = messages.ModeSearch
	ModeEditor        = messages.ModeEditor
	ModeConfirmDelete = messages.ModeConfirmDelete
	ModeQuickOpen     = messages.ModeQuickOpen
	ModeReader        = messages.ModeReader
)

type OpenNoteMsg = messages.OpenNoteMsg
type DebounceFireMsg = messages.DebounceFireMsg
type StorageChangedMsg = messages.StorageChangedMsg
type StatusMsg = messages.StatusMsg
type ClearStatusMsg = messages.ClearStatusMsg
