package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepnotes/internal/notes/data"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func note(id, title string, pinned bool, updatedOffset time.Duration) data.Note {
	return data.Note{
		ID:        id,
		Title:     title,
		Pinned:    pinned,
		CreatedAt: base,
		UpdatedAt: base.Add(updatedOffset),
	}
}

func ids(notes []data.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestDeriveView_Filter(t *testing.T) {
	notes := []data.Note{
		note("1", "Grocery List", false, time.Minute),
		note("2", "Meeting Notes", false, 2*time.Minute),
		note("3", "Recipe", false, 3*time.Minute),
	}

	v := DeriveView(notes, "meet")
	assert.Empty(t, v.Pinned)
	require.Len(t, v.Others, 1)
	assert.Equal(t, "Meeting Notes", v.Others[0].Title)

	v = DeriveView(notes, "  MEET ")
	assert.Equal(t, 1, v.Len(), "query is trimmed and case-insensitive")
}

func TestDeriveView_MatchesContent(t *testing.T) {
	n := note("1", "Shopping", false, 0)
	n.Content = "Buy Milk and eggs"
	v := DeriveView([]data.Note{n, note("2", "Other", false, 0)}, "milk")
	assert.Equal(t, []string{"1"}, ids(v.All()))
}

func TestDeriveView_EmptyQueryMatchesAll(t *testing.T) {
	notes := []data.Note{
		note("1", "", false, 0),
		note("2", "b", true, 0),
	}
	v := DeriveView(notes, "   ")
	assert.Equal(t, 2, v.Len())
}

func TestDeriveView_PinOrdering(t *testing.T) {
	notes := []data.Note{
		note("a", "A", true, time.Minute),
		note("b", "B", false, 5*time.Minute),
		note("c", "C", true, 3*time.Minute),
	}

	v := DeriveView(notes, "")
	assert.Equal(t, []string{"c", "a"}, ids(v.Pinned))
	assert.Equal(t, []string{"b"}, ids(v.Others))
	assert.Equal(t, []string{"c", "a", "b"}, ids(v.All()))

	reversed := []data.Note{notes[2], notes[1], notes[0]}
	v2 := DeriveView(reversed, "")
	assert.Equal(t, ids(v.Pinned), ids(v2.Pinned), "insertion order does not matter")
	assert.Equal(t, ids(v.Others), ids(v2.Others))
}

func TestDeriveView_StableTies(t *testing.T) {
	notes := []data.Note{
		note("1", "x", false, time.Minute),
		note("2", "x", false, time.Minute),
		note("3", "x", false, time.Minute),
	}

	first := ids(DeriveView(notes, "").Others)
	assert.Equal(t, []string{"1", "2", "3"}, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ids(DeriveView(notes, "").Others))
	}
}

func TestDeriveView_FallsBackToCreatedAt(t *testing.T) {
	legacy := data.Note{ID: "old", Title: "legacy", CreatedAt: base.Add(10 * time.Minute)}
	notes := []data.Note{
		note("new", "recent", false, 5*time.Minute),
		legacy,
	}
	v := DeriveView(notes, "")
	assert.Equal(t, []string{"old", "new"}, ids(v.Others))
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	notes := []data.Note{
		note("1", "x", false, time.Minute),
		note("2", "x", false, 2*time.Minute),
	}
	DeriveView(notes, "")
	assert.Equal(t, []string{"1", "2"}, ids(notes))
}

func TestFuzzyFind(t *testing.T) {
	notes := []data.Note{
		note("1", "Grocery List", false, time.Minute),
		note("2", "Meeting Notes", false, 2*time.Minute),
		note("3", "Recipe", true, 3*time.Minute),
	}

	matches := FuzzyFind(notes, "mtng")
	require.NotEmpty(t, matches)
	assert.Equal(t, "2", matches[0].Note.ID)
	assert.NotEmpty(t, matches[0].MatchedIndexes)

	assert.Empty(t, FuzzyFind(notes, "zzzz"))

	all := FuzzyFind(notes, "")
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].Note.ID, "pinned first when no pattern")
}
