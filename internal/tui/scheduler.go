package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type pauseElapsedMsg struct {
	id uint64
}

// Scheduler runs delayed engine tasks on the Bubble Tea update loop. Each
// task becomes a tea.Tick; the tick message fires the task unless it was
// cancelled in between.
type Scheduler struct {
	nextID uint64
	tasks  map[uint64]func()
	queued []tea.Cmd
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: map[uint64]func(){}}
}

// After implements engine.Scheduler.
func (s *Scheduler) After(d time.Duration, task func()) func() {
	s.nextID++
	id := s.nextID
	s.tasks[id] = task
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return pauseElapsedMsg{id: id}
	}))
	return func() {
		delete(s.tasks, id)
	}
}

func (s *Scheduler) fire(id uint64) {
	task, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	task()
}

func (s *Scheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
