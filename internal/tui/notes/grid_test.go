package notes

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/query"
)

func gridWith(t *testing.T, width int, notes ...data.Note) GridModel {
	t.Helper()
	g := NewGridModel()
	g.SetSize(width, 40)
	g.SetView(query.DeriveView(notes, ""), "")
	return g
}

func mkNote(id, title string, pinned bool, age time.Duration) data.Note {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return data.Note{ID: id, Title: title, Pinned: pinned, CreatedAt: base, UpdatedAt: base.Add(-age)}
}

func press(g GridModel, k string) GridModel {
	var msg tea.KeyMsg
	switch k {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	g, _ = g.Update(msg)
	return g
}

func selectedID(g GridModel) string {
	n, _ := g.Selected()
	return n.ID
}

func TestGrid_Columns(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{10, 1},
		{60, 2},
		{120, 4},
		{500, maxColumns},
	}
	for _, tt := range tests {
		g := NewGridModel()
		g.SetSize(tt.width, 20)
		if got := g.Columns(); got != tt.want {
			t.Errorf("Columns() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestGrid_NavigationAcrossBuckets(t *testing.T) {
	// two columns: pinned row [p1], others rows [o1 o2] [o3]
	g := gridWith(t, 60,
		mkNote("p1", "pinned", true, 0),
		mkNote("o1", "one", false, 1*time.Minute),
		mkNote("o2", "two", false, 2*time.Minute),
		mkNote("o3", "three", false, 3*time.Minute),
	)
	if selectedID(g) != "p1" {
		t.Fatalf("expected cursor on p1, got %s", selectedID(g))
	}

	g = press(g, "j")
	if got := selectedID(g); got != "o1" {
		t.Errorf("down from pinned row: got %s, want o1", got)
	}
	g = press(g, "l")
	if got := selectedID(g); got != "o2" {
		t.Errorf("right: got %s, want o2", got)
	}
	g = press(g, "down")
	if got := selectedID(g); got != "o3" {
		t.Errorf("down into a shorter row: got %s, want o3", got)
	}
	g = press(g, "down")
	if got := selectedID(g); got != "o3" {
		t.Errorf("down past the end should stay: got %s", got)
	}
	g = press(g, "up")
	g = press(g, "k")
	if got := selectedID(g); got != "p1" {
		t.Errorf("up twice: got %s, want p1", got)
	}
}

func TestGrid_SelectionFollowsNote(t *testing.T) {
	a := mkNote("a", "alpha", false, time.Minute)
	b := mkNote("b", "beta", false, 2*time.Minute)
	g := gridWith(t, 120, a, b)
	g = press(g, "l")
	if selectedID(g) != "b" {
		t.Fatalf("expected b selected")
	}

	// b becomes newest; the cursor stays on it.
	b.UpdatedAt = a.UpdatedAt.Add(time.Minute)
	g.SetView(query.DeriveView([]data.Note{a, b}, ""), "")
	if got := selectedID(g); got != "b" {
		t.Errorf("selection moved to %s", got)
	}

	g.SetView(query.DeriveView([]data.Note{a}, ""), "")
	if got := selectedID(g); got != "a" {
		t.Errorf("cursor should clamp onto a, got %s", got)
	}
}

func TestGrid_View(t *testing.T) {
	g := gridWith(t, 120,
		mkNote("p", "Pinned Thing", true, 0),
		mkNote("o", "", false, time.Minute),
	)
	out := g.View()
	for _, want := range []string{"PINNED", "OTHERS", "Pinned Thing", "Untitled"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	empty := NewGridModel()
	empty.SetSize(80, 10)
	empty.SetView(query.View{}, "zebra")
	if !strings.Contains(empty.View(), `No notes match "zebra"`) {
		t.Error("empty search should say nothing matched")
	}
}

func TestPreviewLines(t *testing.T) {
	lines := previewLines("a\nb", 10, 4)
	if len(lines) != 4 {
		t.Fatalf("expected padding to 4 lines, got %d", len(lines))
	}
	long := previewLines(strings.Repeat("word ", 40), 10, 2)
	if len(long) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(long))
	}
}
