package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/service"
)

// countingStore records every ApplyPartial that reaches the store.
type countingStore struct {
	service.NoteService
	partials []data.Partial
	pins     int
}

func (c *countingStore) ApplyPartial(id string, p data.Partial) error {
	c.partials = append(c.partials, p)
	return c.NoteService.ApplyPartial(id, p)
}

func (c *countingStore) TogglePin(id string) {
	c.pins++
	c.NoteService.TogglePin(id)
}

func setup(t *testing.T, opts ...Option) (*Session, *countingStore, *ManualScheduler) {
	t.Helper()
	store := &countingStore{NoteService: service.NewNoteService(data.NewMemoryStorage())}
	sched := NewManualScheduler()
	return NewSession(store, sched, opts...), store, sched
}

func TestSession_DebounceCoalescing(t *testing.T) {
	s, store, sched := setup(t)
	n, err := s.OpenNew()
	require.NoError(t, err)

	s.SetTitle("G")
	sched.Advance(100 * time.Millisecond)
	s.SetTitle("Gr")
	sched.Advance(100 * time.Millisecond)
	s.SetTitle("Groceries")

	assert.Empty(t, store.partials, "nothing is committed inside the window")
	assert.Equal(t, "Groceries", s.Working().Title, "working copy updates at once")

	sched.Advance(399 * time.Millisecond)
	assert.Empty(t, store.partials)

	sched.Advance(time.Millisecond)
	require.Len(t, store.partials, 1)
	assert.Equal(t, "Groceries", *store.partials[0].Title)

	got, _ := store.Get(n.ID)
	assert.Equal(t, "Groceries", got.Title)
	assert.False(t, s.Pending())
}

func TestSession_SeparateBurstsCommitSeparately(t *testing.T) {
	s, store, sched := setup(t)
	_, err := s.OpenNew()
	require.NoError(t, err)

	s.SetTitle("first")
	sched.Advance(DefaultDebounce)
	s.SetContent("second")
	sched.Advance(DefaultDebounce)

	require.Len(t, store.partials, 2)
	assert.Equal(t, "first", *store.partials[0].Title)
	assert.Equal(t, "second", *store.partials[1].Content)
}

func TestSession_CloseDiscardsPendingEdit(t *testing.T) {
	s, store, sched := setup(t)
	existing := store.CreateDraft()
	title := "Recipe"
	require.NoError(t, store.ApplyPartial(existing.ID, data.Partial{Title: &title}))
	store.partials = nil

	require.NoError(t, s.Open(existing.ID))
	s.SetTitle("Recipe v2")
	assert.False(t, s.Close())

	sched.Advance(time.Second)
	assert.Empty(t, store.partials)
	got, _ := store.Get(existing.ID)
	assert.Equal(t, "Recipe", got.Title)
	assert.Zero(t, sched.Pending())
}

func TestSession_FlushOnClose(t *testing.T) {
	s, store, sched := setup(t, WithFlushOnClose(true))
	n, err := s.OpenNew()
	require.NoError(t, err)

	s.SetContent("last keystroke")
	assert.False(t, s.Close())

	require.Len(t, store.partials, 1)
	got, ok := store.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "last keystroke", got.Content)

	sched.Advance(time.Second)
	assert.Len(t, store.partials, 1, "the cancelled timer does not commit again")
}

func TestSession_EmptyDraftRemovedOnClose(t *testing.T) {
	s, store, _ := setup(t)
	before := store.Count()

	_, err := s.OpenNew()
	require.NoError(t, err)
	assert.Equal(t, before+1, store.Count())

	assert.True(t, s.Close())
	assert.Equal(t, before, store.Count())
	assert.False(t, s.IsOpen())
}

func TestSession_DraftWithDiscardedEditIsRemoved(t *testing.T) {
	s, store, _ := setup(t)
	_, err := s.OpenNew()
	require.NoError(t, err)

	s.SetTitle("typed too fast")
	assert.True(t, s.Close(), "the uncommitted title does not save the draft")
	assert.Zero(t, store.Count())
}

func TestSession_PinCommitsImmediately(t *testing.T) {
	s, store, sched := setup(t)
	n, err := s.OpenNew()
	require.NoError(t, err)

	s.SetTitle("pending")
	s.TogglePin()

	assert.Equal(t, 1, store.pins)
	assert.True(t, s.Working().Pinned)
	got, _ := store.Get(n.ID)
	assert.True(t, got.Pinned)
	assert.Empty(t, got.Title, "the pending edit is still pending")
	assert.True(t, s.Pending())

	sched.Advance(DefaultDebounce)
	got, _ = store.Get(n.ID)
	assert.Equal(t, "pending", got.Title)
	assert.True(t, got.Pinned, "the debounced commit does not undo the pin")
}

func TestSession_OpenReplacesPreviousSession(t *testing.T) {
	s, store, _ := setup(t)
	first, err := s.OpenNew()
	require.NoError(t, err)

	second := store.CreateDraft()
	require.NoError(t, s.Open(second.ID))

	_, ok := store.Get(first.ID)
	assert.False(t, ok, "the abandoned draft was cleaned up")
	assert.Equal(t, second.ID, s.NoteID())
}

func TestSession_ReopenOpenDraftKeepsIt(t *testing.T) {
	s, store, sched := setup(t)
	draft, err := s.OpenNew()
	require.NoError(t, err)

	require.NoError(t, s.Open(draft.ID))
	_, ok := store.Get(draft.ID)
	require.True(t, ok, "reopening an empty draft must not delete it")

	s.SetTitle("half typed")
	require.NoError(t, s.Open(draft.ID))

	assert.True(t, s.IsOpen())
	assert.Equal(t, draft.ID, s.NoteID())
	assert.Equal(t, "half typed", s.Working().Title, "working copy survives")
	_, ok = store.Get(draft.ID)
	assert.True(t, ok, "the draft is not cleaned up")

	sched.Advance(DefaultDebounce)
	got, _ := store.Get(draft.ID)
	assert.Equal(t, "half typed", got.Title, "the pending edit still commits")
}

func TestSession_OpenMissing(t *testing.T) {
	s, _, _ := setup(t)
	assert.ErrorIs(t, s.Open("ghost"), ErrNoteNotFound)
	assert.False(t, s.IsOpen())
}

func TestSession_EditsWhileClosedAreIgnored(t *testing.T) {
	s, store, sched := setup(t)
	s.SetTitle("nobody home")
	s.TogglePin()
	sched.Advance(time.Second)

	assert.Empty(t, store.partials)
	assert.Zero(t, store.pins)
	assert.False(t, s.Close())
}

func TestSession_CustomDebounce(t *testing.T) {
	s, store, sched := setup(t, WithDebounce(50*time.Millisecond))
	_, err := s.OpenNew()
	require.NoError(t, err)

	s.SetColor(data.ColorGreen)
	sched.Advance(50 * time.Millisecond)
	require.Len(t, store.partials, 1)
	assert.Equal(t, data.ColorGreen, *store.partials[0].Color)
}

func TestManualScheduler(t *testing.T) {
	sched := NewManualScheduler()
	var order []string

	sched.Schedule(20*time.Millisecond, func() { order = append(order, "b") })
	cancel := sched.Schedule(10*time.Millisecond, func() { order = append(order, "x") })
	sched.Schedule(10*time.Millisecond, func() {
		order = append(order, "a")
		sched.Schedule(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	cancel()
	assert.Equal(t, 2, sched.Pending())

	sched.Advance(30 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Zero(t, sched.Pending())
}
