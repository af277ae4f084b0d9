package notes

import (
	"github.com/charmbracelet/bubbles/key"

	"keepnotes/internal/tui/shared"
)

// GridKeys are the bindings of the card grid.
type GridKeys struct {
	New       key.Binding
	Edit      key.Binding
	Pin       key.Binding
	Delete    key.Binding
	Search    key.Binding
	QuickOpen key.Binding
	Read      key.Binding
	Yank      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// EditorKeys are the bindings of the editor modal.
type EditorKeys struct {
	SwitchField key.Binding
	CycleColor  key.Binding
	Pin         key.Binding
	Close       key.Binding
}

var Grid = GridKeys{
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "New note")),
	Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter / e", "Edit note")),
	Pin:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "Pin / unpin")),
	Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "Delete note")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search")),
	QuickOpen: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "Quick open")),
	Read:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "Read view")),
	Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Copy content")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k / ↑", "Up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j / ↓", "Down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h / ←", "Left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l / →", "Right")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show this help")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
}

var Editor = EditorKeys{
	SwitchField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "Title / content")),
	CycleColor:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "Cycle color")),
	Pin:         key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "Pin / unpin")),
	Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Close")),
}

func section(title string, binds ...key.Binding) shared.HelpSection {
	s := shared.HelpSection{Title: title}
	for _, b := range binds {
		h := b.Help()
		s.Binds = append(s.Binds, shared.HelpBind{Key: h.Key, Desc: h.Desc})
	}
	return s
}

// HelpSections lists every binding for the help popup.
func HelpSections() []shared.HelpSection {
	g, e := Grid, Editor
	return []shared.HelpSection{
		section("Notes", g.New, g.Edit, g.Pin, g.Delete, g.Read, g.Yank),
		section("Navigation", g.Up, g.Down, g.Left, g.Right, g.Search, g.QuickOpen),
		section("Editor", e.SwitchField, e.CycleColor, e.Pin, e.Close),
		{Title: "General", Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		}},
	}
}
