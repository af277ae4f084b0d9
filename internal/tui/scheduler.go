package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keepnotes/internal/tui/messages"
)

// tickScheduler turns editor debounce timers into tea.Tick commands so the
// callbacks run on the update loop, never on a timer goroutine.
type tickScheduler struct {
	nextID  int
	live    map[int]func()
	pending []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{live: make(map[int]func())}
}

func (s *tickScheduler) Schedule(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.live[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return messages.DebounceFireMsg{ID: id}
	}))
	return func() { delete(s.live, id) }
}

// Drain returns the ticks scheduled since the last call.
func (s *tickScheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Fire runs the callback for id unless it was cancelled. It reports whether
// anything ran.
func (s *tickScheduler) Fire(id int) bool {
	fn, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	fn()
	return true
}
