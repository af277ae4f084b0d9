package notes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/query"
	"keepnotes/internal/tui/shared"
	"keepnotes/internal/tui/theme"
)

const (
	minCardWidth     = 26
	maxColumns       = 5
	cardPreviewLines = 4
	// border + title + preview lines
	cardHeight = 2 + 1 + cardPreviewLines
)

// GridModel renders the derived view as a responsive card grid and tracks
// the selected card.
type GridModel struct {
	view   query.View
	query  string
	cursor int
	width  int
	height int
}

// cell is where a card sits in the laid-out grid.
type cell struct {
	row int
	col int
}

func NewGridModel() GridModel {
	return GridModel{}
}

func (m *GridModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetView replaces the displayed notes, keeping the selection on the same
// note when it is still visible.
func (m *GridModel) SetView(v query.View, q string) {
	selected, ok := m.Selected()
	m.view = v
	m.query = q
	if ok && m.Select(selected.ID) {
		return
	}
	m.clamp()
}

// Select moves the cursor to the note with id. It reports whether the note
// is visible.
func (m *GridModel) Select(id string) bool {
	for i, n := range m.view.All() {
		if n.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

// Len is the number of visible cards.
func (m GridModel) Len() int { return m.view.Len() }

// Selected returns the note under the cursor.
func (m GridModel) Selected() (data.Note, bool) {
	all := m.view.All()
	if m.cursor < 0 || m.cursor >= len(all) {
		return data.Note{}, false
	}
	return all[m.cursor], true
}

func (m *GridModel) clamp() {
	if n := m.view.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Columns is how many cards fit side by side.
func (m GridModel) Columns() int {
	cols := m.width / (minCardWidth + 1)
	if cols < 1 {
		cols = 1
	}
	if cols > maxColumns {
		cols = maxColumns
	}
	return cols
}

func (m GridModel) cardWidth() int {
	cols := m.Columns()
	w := (m.width - (cols - 1)) / cols
	if w < 10 {
		w = 10
	}
	return w
}

// layout assigns each card of View.All() to a row and column. Each bucket
// starts on a fresh row.
func (m GridModel) layout() []cell {
	cols := m.Columns()
	cells := make([]cell, 0, m.view.Len())
	row := 0
	for _, bucket := range [][]data.Note{m.view.Pinned, m.view.Others} {
		for i := range bucket {
			cells = append(cells, cell{row: row + i/cols, col: i % cols})
		}
		if len(bucket) > 0 {
			row += (len(bucket) + cols - 1) / cols
		}
	}
	return cells
}

// Update moves the selection.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.view.Len() == 0 {
		return m, nil
	}

	cells := m.layout()
	cur := cells[m.cursor]
	switch {
	case key.Matches(keyMsg, Grid.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, Grid.Right):
		if m.cursor < len(cells)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, Grid.Down):
		m.cursor = nearestInRow(cells, cur.row+1, cur.col, m.cursor)
	case key.Matches(keyMsg, Grid.Up):
		m.cursor = nearestInRow(cells, cur.row-1, cur.col, m.cursor)
	}
	return m, nil
}

// nearestInRow finds the card in row closest to col from the left, or
// returns fallback when the row does not exist.
func nearestInRow(cells []cell, row, col, fallback int) int {
	best := -1
	for i, c := range cells {
		if c.row != row {
			continue
		}
		if best < 0 || c.col <= col {
			best = i
		}
	}
	if best < 0 {
		return fallback
	}
	return best
}

func (m GridModel) View() string {
	if m.view.Len() == 0 {
		msg := "No notes yet. Press n to create one."
		if strings.TrimSpace(m.query) != "" {
			msg = "No notes match \"" + strings.TrimSpace(m.query) + "\""
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render(msg))
	}

	var (
		lines      []string
		cursorTop  int
		cursorBot  int
		index      int
		showLabels = len(m.view.Pinned) > 0
	)

	renderBucket := func(label string, notes []data.Note) {
		if len(notes) == 0 {
			return
		}
		if showLabels {
			lines = append(lines, theme.Section.Render(label))
		}
		cols := m.Columns()
		for start := 0; start < len(notes); start += cols {
			end := start + cols
			if end > len(notes) {
				end = len(notes)
			}
			cards := make([]string, 0, end-start)
			for i, n := range notes[start:end] {
				selected := index+i == m.cursor
				if selected {
					cursorTop = len(lines)
					cursorBot = cursorTop + cardHeight
				}
				cards = append(cards, m.renderCard(n, selected))
				if i < end-start-1 {
					cards = append(cards, " ")
				}
			}
			index += end - start
			row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
			lines = append(lines, strings.Split(row, "\n")...)
		}
	}

	renderBucket("PINNED", m.view.Pinned)
	if showLabels && len(m.view.Others) > 0 {
		lines = append(lines, "")
	}
	renderBucket("OTHERS", m.view.Others)

	// Scroll just far enough to keep the selected card visible.
	start := 0
	if cursorBot > m.height {
		start = cursorBot - m.height
	}
	if start > cursorTop {
		start = cursorTop
	}
	end := start + m.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

func (m GridModel) renderCard(n data.Note, selected bool) string {
	style := theme.CardStyle(n.Color, selected)
	inner := m.cardWidth() - style.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}

	titleWidth := inner
	pin := ""
	if n.Pinned {
		pin = theme.Pin.Render(" ●")
		titleWidth -= 2
	}
	title := theme.Bold.Render(shared.Truncate(data.DisplayTitle(n), titleWidth))
	if strings.TrimSpace(n.Title) == "" {
		title = theme.Muted.Render(shared.Truncate(data.DisplayTitle(n), titleWidth))
	}
	title = shared.PadRight(title, titleWidth) + pin

	body := previewLines(data.Preview(n.Content, data.PreviewLimit), inner, cardPreviewLines)
	content := title + "\n" + strings.Join(body, "\n")

	return style.Width(inner + style.GetHorizontalPadding()).Render(content)
}

// previewLines wraps preview text to width and keeps at most max lines,
// padding short previews so every card has the same height.
func previewLines(preview string, width, max int) []string {
	var out []string
	for _, para := range strings.Split(preview, "\n") {
		if para == "" {
			continue
		}
		out = append(out, strings.Split(runewidth.Wrap(para, width), "\n")...)
	}
	if len(out) > max {
		out = out[:max]
		last := out[max-1]
		out[max-1] = runewidth.Truncate(last+"…", width, "…")
	}
	for i, l := range out {
		out[i] = theme.Muted.Render(runewidth.Truncate(l, width, "…"))
	}
	for len(out) < max {
		out = append(out, "")
	}
	return out
}
