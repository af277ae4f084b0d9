package query

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"keepnotes/internal/notes/data"
)

// View is the presentation order of a filtered collection. Pinned is
// always rendered before Others.
type View struct {
	Pinned []data.Note
	Others []data.Note
}

// All returns pinned notes followed by the rest.
func (v View) All() []data.Note {
	out := make([]data.Note, 0, v.Len())
	out = append(out, v.Pinned...)
	return append(out, v.Others...)
}

func (v View) Len() int {
	return len(v.Pinned) + len(v.Others)
}

// NormalizeQuery trims and lowercases a search string.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Matches reports whether n contains the normalized query in its title or
// content. The empty query matches everything.
func Matches(n data.Note, normalized string) bool {
	if normalized == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), normalized) ||
		strings.Contains(strings.ToLower(n.Content), normalized)
}

// DeriveView filters notes by q, splits them into pinned and others, and
// sorts each bucket newest first. Equal timestamps keep input order.
func DeriveView(notes []data.Note, q string) View {
	normalized := NormalizeQuery(q)

	var v View
	for _, n := range notes {
		if !Matches(n, normalized) {
			continue
		}
		if n.Pinned {
			v.Pinned = append(v.Pinned, n)
		} else {
			v.Others = append(v.Others, n)
		}
	}

	sortNewestFirst(v.Pinned)
	sortNewestFirst(v.Others)
	return v
}

func sortNewestFirst(notes []data.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].SortTime().After(notes[j].SortTime())
	})
}

// Match is one quick-open result.
type Match struct {
	Note           data.Note
	MatchedIndexes []int
}

type titleSource []data.Note

func (s titleSource) String(i int) string { return data.DisplayTitle(s[i]) }
func (s titleSource) Len() int            { return len(s) }

// FuzzyFind ranks notes by fuzzy match of pattern against their titles,
// best first. An empty pattern returns every note newest first.
func FuzzyFind(notes []data.Note, pattern string) []Match {
	if strings.TrimSpace(pattern) == "" {
		all := DeriveView(notes, "").All()
		out := make([]Match, len(all))
		for i, n := range all {
			out[i] = Match{Note: n}
		}
		return out
	}

	results := fuzzy.FindFrom(pattern, titleSource(notes))
	out := make([]Match, len(results))
	for i, r := range results {
		out[i] = Match{Note: notes[r.Index], MatchedIndexes: r.MatchedIndexes}
	}
	return out
}
