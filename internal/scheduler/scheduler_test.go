package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEveryFiresOncePerInterval(t *testing.T) {
	s := New()
	calls := 0
	task := s.Every("publish", time.Second, func() { calls++ })

	assert.Equal(t, 0, s.RunDue(t0), "first call only arms the task")
	assert.Equal(t, 0, s.RunDue(t0.Add(999*time.Millisecond)))
	assert.Equal(t, 1, s.RunDue(t0.Add(time.Second)))
	assert.Equal(t, 0, s.RunDue(t0.Add(1500*time.Millisecond)))
	assert.Equal(t, 1, s.RunDue(t0.Add(2*time.Second)))

	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), task.Runs())
	assert.Equal(t, "publish", task.Name())
}

func TestStalledLoopDoesNotBurst(t *testing.T) {
	s := New()
	calls := 0
	s.Every("publish", time.Second, func() { calls++ })

	s.RunDue(t0)
	assert.Equal(t, 1, s.RunDue(t0.Add(10*time.Second)))
	assert.Equal(t, 0, s.RunDue(t0.Add(10500*time.Millisecond)))
	assert.Equal(t, 1, s.RunDue(t0.Add(11*time.Second)))
	assert.Equal(t, 2, calls)
}

func TestLateTickKeepsSchedule(t *testing.T) {
	s := New()
	calls := 0
	s.Every("publish", time.Second, func() { calls++ })

	s.RunDue(t0)
	s.RunDue(t0.Add(1100 * time.Millisecond))
	assert.Equal(t, 1, s.RunDue(t0.Add(2*time.Second)), "next deadline stays on the original grid")
	assert.Equal(t, 2, calls)
}

func TestTrigger(t *testing.T) {
	s := New()
	calls := 0
	task := s.Every("publish", time.Minute, func() { calls++ })

	s.RunDue(t0)
	s.Trigger(task)
	assert.Equal(t, 1, s.RunDue(t0.Add(time.Millisecond)))
	assert.Equal(t, 0, s.RunDue(t0.Add(30*time.Second)))
	assert.Equal(t, 1, s.RunDue(t0.Add(time.Minute+time.Millisecond)))
}

func TestEnable(t *testing.T) {
	s := New()
	calls := 0
	task := s.Every("publish", time.Second, func() { calls++ })

	s.Enable(task, false)
	s.RunDue(t0)
	s.RunDue(t0.Add(5 * time.Second))
	assert.Equal(t, 0, calls)

	s.Enable(task, true)
	s.RunDue(t0.Add(5 * time.Second))
	assert.Equal(t, 1, s.RunDue(t0.Add(6*time.Second)))
	assert.Equal(t, 1, calls)
}

func TestMinimumInterval(t *testing.T) {
	s := New()
	calls := 0
	s.Every("fast", 0, func() { calls++ })

	s.RunDue(t0)
	s.RunDue(t0.Add(time.Millisecond))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}
