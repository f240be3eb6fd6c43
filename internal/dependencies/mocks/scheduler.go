package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/quizbingo/internal/dependencies/scheduler"
)

// MockScheduler is a manually driven Scheduler. Actions only run when the
// test advances virtual time, on the test's goroutine.
type MockScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*mockTask
}

// Ensure MockScheduler implements Scheduler
var _ scheduler.Scheduler = (*MockScheduler)(nil)

type mockTask struct {
	owner     *MockScheduler
	due       time.Duration
	seq       int
	f         func()
	cancelled bool
	ran       bool
}

// NewMockScheduler creates a MockScheduler at virtual time zero
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// AfterFunc queues f to run once virtual time has advanced by d
func (s *MockScheduler) AfterFunc(d time.Duration, f func()) scheduler.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &mockTask{owner: s, due: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Cancel removes the task if it has not run yet
func (t *mockTask) Cancel() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.ran || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Advance moves virtual time forward, running every action that falls due
// in order. Actions scheduled while advancing also run if they fall due.
func (s *MockScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.ran = true
		s.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of scheduled actions that have not run or been cancelled
func (s *MockScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tasks {
		if !t.ran && !t.cancelled {
			count++
		}
	}
	return count
}

// nextDue returns the earliest live task due at or before target. Caller holds mu.
func (s *MockScheduler) nextDue(target time.Duration) *mockTask {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.ran && !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if len(s.tasks) == 0 || s.tasks[0].due > target {
		return nil
	}
	return s.tasks[0]
}
