package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lugat-go/internal/quiz"
)

// taskFiredMsg is delivered by tea.Tick when a scheduled task is due.
type taskFiredMsg struct {
	id int
}

// teaScheduler implements quiz.Scheduler on top of bubbletea ticks, so every
// engine callback runs inside Update like any other message.
type teaScheduler struct {
	nextID int
	tasks  map[int]*teaTask
	queued []tea.Cmd
}

type teaTask struct {
	id     int
	period time.Duration
	fn     func()
	sched  *teaScheduler
}

func (t *teaTask) Cancel() {
	delete(t.sched.tasks, t.id)
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: make(map[int]*teaTask)}
}

func (s *teaScheduler) After(d time.Duration, fn func()) quiz.Task {
	return s.add(d, 0, fn)
}

func (s *teaScheduler) Every(d time.Duration, fn func()) quiz.Task {
	return s.add(d, d, fn)
}

func (s *teaScheduler) add(d, period time.Duration, fn func()) *teaTask {
	s.nextID++
	t := &teaTask{id: s.nextID, period: period, fn: fn, sched: s}
	s.tasks[t.id] = t
	s.queued = append(s.queued, tickCmd(t.id, d))
	return t
}

func tickCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return taskFiredMsg{id: id} })
}

// Fire runs the task if it is still live, re-arming periodic ones first.
func (s *teaScheduler) Fire(id int) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	if t.period > 0 {
		s.queued = append(s.queued, tickCmd(id, t.period))
	} else {
		delete(s.tasks, id)
	}
	t.fn()
}

// Flush hands the ticks scheduled since the last call to bubbletea.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) Pending() int { return len(s.tasks) }
