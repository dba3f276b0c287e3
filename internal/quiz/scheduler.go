package quiz

import (
	"sort"
	"time"
)

// Task is a scheduled callback that can be cancelled before it runs.
type Task interface {
	Cancel()
}

// Scheduler runs callbacks later. Implementations must run every callback on
// the same goroutine that drives the Engine.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

// ManualClock is a virtual-time Scheduler. Nothing runs until Advance is
// called, which makes engine behaviour fully deterministic in tests.
type ManualClock struct {
	now    time.Duration
	nextID int
	tasks  []*manualTask
}

type manualTask struct {
	id        int
	due       time.Duration
	period    time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) After(d time.Duration, fn func()) Task {
	return c.add(d, 0, fn)
}

func (c *ManualClock) Every(d time.Duration, fn func()) Task {
	return c.add(d, d, fn)
}

func (c *ManualClock) add(d, period time.Duration, fn func()) *manualTask {
	c.nextID++
	t := &manualTask{id: c.nextID, due: c.now + d, period: period, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

// Now is the virtual time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration { return c.now }

// Pending counts tasks that have not run or been cancelled.
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, running due callbacks in time
// order. Callbacks may schedule or cancel other tasks.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			t.cancelled = true
		}
		t.fn()
	}
	c.now = target
	c.compact()
}

func (c *ManualClock) nextDue(target time.Duration) *manualTask {
	live := make([]*manualTask, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !t.cancelled && t.due <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].id < live[j].id
	})
	return live[0]
}

func (c *ManualClock) compact() {
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
}
