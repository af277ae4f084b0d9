package data

import (
	"encoding/json"
	"strings"
	"time"
)

// Color is the tag a note is rendered with.
type Color string

const (
	ColorDefault Color = "default"
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
)

// Colors lists every color in picker order.
var Colors = []Color{ColorDefault, ColorYellow, ColorBlue, ColorGreen}

// ParseColor maps a stored or user-supplied color name onto a known Color.
// "none" is what older blobs used for the default color. Unknown names
// fall back to the default and report ok=false.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "none":
		return ColorDefault, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "green":
		return ColorGreen, true
	}
	return ColorDefault, false
}

// Next returns the color after c in picker order, wrapping around.
func (c Color) Next() Color {
	for i, col := range Colors {
		if col == c {
			return Colors[(i+1)%len(Colors)]
		}
	}
	return ColorDefault
}

// Note is the only persistent entity.
type Note struct {
	ID        string
	Title     string
	Content   string
	Color     Color
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlank reports whether both title and content are empty after trimming.
func (n Note) IsBlank() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// SortTime is the timestamp notes are ordered by: UpdatedAt, or CreatedAt
// when UpdatedAt was never recorded.
func (n Note) SortTime() time.Time {
	if n.UpdatedAt.IsZero() {
		return n.CreatedAt
	}
	return n.UpdatedAt
}

// Partial carries the fields of an update. A nil field is absent.
// ID and CreatedAt are identity fields and may not change a note.
type Partial struct {
	Title     *string
	Content   *string
	Color     *Color
	Pinned    *bool
	ID        *string
	CreatedAt *time.Time
}

// IsEmpty reports whether the partial carries no mutable field.
func (p Partial) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil && p.Pinned == nil
}

// noteJSON is the stored shape. Timestamps are Unix milliseconds so blobs
// stay compatible with the browser version of the app.
type noteJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	Pinned    bool   `json:"pinned"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	color := n.Color
	if color == "" {
		color = ColorDefault
	}
	return json.Marshal(noteJSON{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Color:     string(color),
		Pinned:    n.Pinned,
		CreatedAt: toMillis(n.CreatedAt),
		UpdatedAt: toMillis(n.UpdatedAt),
	})
}

func (n *Note) UnmarshalJSON(b []byte) error {
	var raw noteJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	color, _ := ParseColor(raw.Color)
	*n = Note{
		ID:        raw.ID,
		Title:     raw.Title,
		Content:   raw.Content,
		Color:     color,
		Pinned:    raw.Pinned,
		CreatedAt: fromMillis(raw.CreatedAt),
		UpdatedAt: fromMillis(raw.UpdatedAt),
	}
	return nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
