package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/tui/shared"
)

const (
	shortIDLen    = 8
	listTitleCols = 40
)

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// printNoteLine prints one row of `list`.
func printNoteLine(w io.Writer, n data.Note) {
	title := shared.PadRight(shared.Truncate(data.DisplayTitle(n), listTitleCols), listTitleCols)
	color := ""
	if n.Color != data.ColorDefault {
		color = " (" + string(n.Color) + ")"
	}
	fmt.Fprintf(w, "[%s] %s %s%s\n", shortID(n.ID), title, formatTime(n.SortTime()), color)
}

// printNote prints a full note for `show`.
func printNote(w io.Writer, n data.Note) {
	fmt.Fprintf(w, "%s\n", data.DisplayTitle(n))
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", len([]rune(data.DisplayTitle(n)))))
	fmt.Fprintf(w, "ID:      %s\n", n.ID)
	fmt.Fprintf(w, "Color:   %s\n", n.Color)
	fmt.Fprintf(w, "Pinned:  %v\n", n.Pinned)
	fmt.Fprintf(w, "Created: %s\n", formatTime(n.CreatedAt))
	fmt.Fprintf(w, "Updated: %s\n", formatTime(n.SortTime()))
	if n.Content != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(n.Content, "\n"))
	}
}
