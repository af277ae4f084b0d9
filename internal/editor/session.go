package editor

import (
	"errors"
	"time"

	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
)

// DefaultDebounce is the quiet period after the last edit before the
// working copy is committed.
const DefaultDebounce = 400 * time.Millisecond

var ErrNoteNotFound = errors.New("note not found")

// Committer is the part of the note store a session writes through.
type Committer interface {
	Get(id string) (data.Note, bool)
	CreateDraft() data.Note
	ApplyPartial(id string, p data.Partial) error
	TogglePin(id string)
	CleanupIfEmpty(id string) bool
}

// Session holds the working copy of at most one open note. Edits change the
// working copy at once and reach the store after the debounce window.
type Session struct {
	store        Committer
	sched        Scheduler
	debounce     time.Duration
	flushOnClose bool

	open    bool
	working data.Note
	cancel  func()
	gen     int
}

type Option func(*Session)

func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithFlushOnClose commits a pending edit on Close instead of dropping it.
func WithFlushOnClose(flush bool) Option {
	return func(s *Session) { s.flushOnClose = flush }
}

func NewSession(store Committer, sched Scheduler, opts ...Option) *Session {
	s := &Session{
		store:    store,
		sched:    sched,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open seeds the working copy from the store. A different note already open
// is closed first; reopening the open note keeps its working copy.
func (s *Session) Open(id string) error {
	if s.open && s.working.ID == id {
		return nil
	}
	n, ok := s.store.Get(id)
	if !ok {
		return ErrNoteNotFound
	}
	if s.open {
		s.Close()
	}
	s.open = true
	s.working = n
	logs.Logger.Printf("Editor: open %s", id)
	return nil
}

// OpenNew creates a draft and opens it.
func (s *Session) OpenNew() (data.Note, error) {
	if s.open {
		s.Close()
	}
	n := s.store.CreateDraft()
	if err := s.Open(n.ID); err != nil {
		return data.Note{}, err
	}
	return n, nil
}

func (s *Session) IsOpen() bool { return s.open }

func (s *Session) NoteID() string {
	if !s.open {
		return ""
	}
	return s.working.ID
}

// Working returns the working copy, which may be ahead of the store.
func (s *Session) Working() data.Note { return s.working }

// Pending reports whether an edit is waiting for its commit.
func (s *Session) Pending() bool { return s.cancel != nil }

func (s *Session) SetTitle(title string) {
	if !s.open || s.working.Title == title {
		return
	}
	s.working.Title = title
	s.schedule()
}

func (s *Session) SetContent(content string) {
	if !s.open || s.working.Content == content {
		return
	}
	s.working.Content = content
	s.schedule()
}

func (s *Session) SetColor(c data.Color) {
	if !s.open || s.working.Color == c {
		return
	}
	s.working.Color = c
	s.schedule()
}

// TogglePin commits at once and leaves any pending edit scheduled.
func (s *Session) TogglePin() {
	if !s.open {
		return
	}
	s.store.TogglePin(s.working.ID)
	if n, ok := s.store.Get(s.working.ID); ok {
		s.working.Pinned = n.Pinned
		s.working.UpdatedAt = n.UpdatedAt
	}
}

// Close ends the session. A pending edit is dropped unless the session was
// built WithFlushOnClose. It reports whether the note was removed as an
// empty draft.
func (s *Session) Close() bool {
	if !s.open {
		return false
	}
	pending := s.Pending()
	s.stop()
	if pending && s.flushOnClose {
		s.commit()
	}

	id := s.working.ID
	s.open = false
	s.working = data.Note{}

	removed := s.store.CleanupIfEmpty(id)
	logs.Logger.Printf("Editor: close %s (removed=%v, dropped=%v)", id, removed, pending && !s.flushOnClose)
	return removed
}

func (s *Session) schedule() {
	s.stop()
	gen := s.gen
	s.cancel = s.sched.Schedule(s.debounce, func() {
		if gen != s.gen || !s.open {
			return
		}
		s.cancel = nil
		s.commit()
	})
}

// stop cancels the outstanding timer, if any.
func (s *Session) stop() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) commit() {
	title, content, color := s.working.Title, s.working.Content, s.working.Color
	err := s.store.ApplyPartial(s.working.ID, data.Partial{
		Title:   &title,
		Content: &content,
		Color:   &color,
	})
	if err != nil {
		logs.Logger.Printf("Editor: commit %s failed: %v", s.working.ID, err)
		return
	}
	if n, ok := s.store.Get(s.working.ID); ok {
		s.working.UpdatedAt = n.UpdatedAt
	}
}
