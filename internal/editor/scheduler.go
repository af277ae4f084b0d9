package editor

import (
	"sort"
	"time"
)

// Scheduler runs fn once after d unless the returned cancel func is called
// first. Cancelling after fn has run is a no-op.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// ManualScheduler runs callbacks only when virtual time is advanced.
type ManualScheduler struct {
	now    time.Duration
	nextID int
	tasks  []*manualTask
}

type manualTask struct {
	id  int
	at  time.Duration
	fn  func()
	off bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	m.nextID++
	task := &manualTask{id: m.nextID, at: m.now + d, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() { task.off = true }
}

// Advance moves virtual time forward by d, running every callback that
// falls due in schedule order. Callbacks may schedule further work.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		task := m.nextDue(target)
		if task == nil {
			break
		}
		m.now = task.at
		task.off = true
		task.fn()
	}
	m.now = target
	m.compact()
}

// Pending counts callbacks that are scheduled and not cancelled.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.off {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var live []*manualTask
	for _, t := range m.tasks {
		if !t.off && t.at <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].id < live[j].id
	})
	return live[0]
}

func (m *ManualScheduler) compact() {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.off {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
