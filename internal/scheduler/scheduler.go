// Package scheduler runs periodic callbacks from a cooperative loop.
//
// Nothing here owns a goroutine or sleeps. The loop calls RunDue once per
// iteration with the time it sampled, and every callback whose interval has
// elapsed runs once. A loop that stalls for several intervals does not get a
// burst of catch-up calls.
package scheduler

import (
	"time"

	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
)

// Task is a registered periodic callback.
type Task struct {
	name     string
	interval time.Duration
	fn       func()
	next     time.Time
	enabled  bool
	runs     uint64
}

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Runs returns how many times the task has fired.
func (t *Task) Runs() uint64 { return t.runs }

// Scheduler holds periodic tasks. It is not safe for concurrent use.
type Scheduler struct {
	tasks []*Task
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run every interval. The first run happens one
// interval after the first RunDue call. Intervals below one millisecond are
// raised to one millisecond.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) *Task {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	t := &Task{name: name, interval: interval, fn: fn, enabled: true}
	s.tasks = append(s.tasks, t)
	return t
}

// Enable turns a task on or off. A task turned back on restarts its interval
// on the next RunDue.
func (s *Scheduler) Enable(t *Task, on bool) {
	t.enabled = on
	if on {
		t.next = time.Time{}
	}
}

// Trigger makes t due on the next RunDue regardless of its interval.
func (s *Scheduler) Trigger(t *Task) {
	t.next = time.Time{}.Add(1)
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// RunDue runs every task that is due at now and returns how many ran.
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	for _, t := range s.tasks {
		if !t.enabled {
			continue
		}
		if t.next.IsZero() {
			t.next = now.Add(t.interval)
			continue
		}
		if now.Before(t.next) {
			continue
		}

		t.next = t.next.Add(t.interval)
		if !now.Before(t.next) {
			// Fell behind by more than one interval; realign instead of bursting.
			t.next = now.Add(t.interval)
		}
		t.runs++
		ran++

		logging.Debug("Running periodic task",
			zap.String("task", t.name),
			zap.Uint64("runs", t.runs),
		)
		t.fn()
	}
	return ran
}
