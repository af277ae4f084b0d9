package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
)

var (
	// ErrImmutableField rejects a partial that would change a note's id or
	// creation time.
	ErrImmutableField = errors.New("id and createdAt cannot be changed")
	ErrNotFound       = errors.New("note not found")
	ErrAmbiguousID    = errors.New("id prefix matches more than one note")
	ErrInvalidColor   = errors.New("unknown note color")
)

// NoteService is the single source of truth for the note collection.
// Every mutation that changes something is followed by a full save.
type NoteService interface {
	CreateDraft() data.Note
	ApplyPartial(id string, p data.Partial) error
	TogglePin(id string)
	Delete(id string)
	CleanupIfEmpty(id string) bool

	Get(id string) (data.Note, bool)
	Resolve(ref string) (data.Note, error)
	List() []data.Note
	Count() int
	Reload()
	LastSaveError() error
}

// Option configures a NoteService.
type Option func(*noteServiceImpl)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *noteServiceImpl) { s.clock = clock }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *noteServiceImpl) { s.newID = gen }
}

type noteServiceImpl struct {
	notes   []data.Note
	storage data.Storage
	clock   func() time.Time
	newID   func() string
	saveErr error
}

// NewNoteService loads the collection from storage.
func NewNoteService(storage data.Storage, opts ...Option) NoteService {
	svc := &noteServiceImpl{
		storage: storage,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.Reload()
	return svc
}

func (s *noteServiceImpl) Reload() {
	s.notes = s.storage.Load()
	logs.Logger.Printf("Service: loaded %d notes", len(s.notes))
}

// now is the wall clock at storage precision, never earlier than floor.
func (s *noteServiceImpl) now(floor time.Time) time.Time {
	t := s.clock().UTC().Truncate(time.Millisecond)
	if t.Before(floor) {
		return floor
	}
	return t
}

func (s *noteServiceImpl) index(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *noteServiceImpl) save() {
	if err := s.storage.Save(s.notes); err != nil {
		logs.Logger.Printf("Service: save failed: %v", err)
		s.saveErr = err
		return
	}
	s.saveErr = nil
}

func (s *noteServiceImpl) CreateDraft() data.Note {
	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}

	now := s.now(time.Time{})
	n := data.Note{
		ID:        id,
		Color:     data.ColorDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]data.Note{n}, s.notes...)
	logs.Logger.Printf("Service: CreateDraft %s", id)
	s.save()
	return n
}

func (s *noteServiceImpl) ApplyPartial(id string, p data.Partial) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	n := s.notes[i]

	if p.ID != nil && *p.ID != n.ID {
		return fmt.Errorf("note %s: %w", id, ErrImmutableField)
	}
	if p.CreatedAt != nil && !p.CreatedAt.Equal(n.CreatedAt) {
		return fmt.Errorf("note %s: %w", id, ErrImmutableField)
	}
	var color data.Color
	if p.Color != nil {
		c, ok := data.ParseColor(string(*p.Color))
		if !ok {
			return fmt.Errorf("note %s: %w: %q", id, ErrInvalidColor, *p.Color)
		}
		color = c
	}
	if p.IsEmpty() {
		return nil
	}

	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = color
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	n.UpdatedAt = s.now(n.SortTime())
	s.notes[i] = n

	logs.Logger.Printf("Service: ApplyPartial %s", id)
	s.save()
	return nil
}

func (s *noteServiceImpl) TogglePin(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.notes[i].Pinned = !s.notes[i].Pinned
	s.notes[i].UpdatedAt = s.now(s.notes[i].SortTime())

	logs.Logger.Printf("Service: TogglePin %s -> %v", id, s.notes[i].Pinned)
	s.save()
}

func (s *noteServiceImpl) Delete(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)

	logs.Logger.Printf("Service: Delete %s", id)
	s.save()
}

func (s *noteServiceImpl) CleanupIfEmpty(id string) bool {
	n, ok := s.Get(id)
	if !ok || !n.IsBlank() {
		return false
	}
	s.Delete(id)
	return true
}

func (s *noteServiceImpl) Get(id string) (data.Note, bool) {
	if i := s.index(id); i >= 0 {
		return s.notes[i], true
	}
	return data.Note{}, false
}

// Resolve finds a note by exact id or by a unique id prefix.
func (s *noteServiceImpl) Resolve(ref string) (data.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return data.Note{}, ErrNotFound
	}
	if n, ok := s.Get(ref); ok {
		return n, nil
	}

	var match data.Note
	count := 0
	for _, n := range s.notes {
		if strings.HasPrefix(n.ID, ref) {
			match = n
			count++
		}
	}
	switch count {
	case 0:
		return data.Note{}, fmt.Errorf("%s: %w", ref, ErrNotFound)
	case 1:
		return match, nil
	}
	return data.Note{}, fmt.Errorf("%s: %w", ref, ErrAmbiguousID)
}

func (s *noteServiceImpl) List() []data.Note {
	out := make([]data.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *noteServiceImpl) Count() int {
	return len(s.notes)
}

func (s *noteServiceImpl) LastSaveError() error {
	return s.saveErr
}
