package scheduler

import "time"

// Scheduler runs single-shot deferred actions that can be cancelled
type Scheduler interface {
	// AfterFunc runs f once after d unless the returned Task is cancelled first
	AfterFunc(d time.Duration, f func()) Task
}

// Task is a handle to a scheduled action
type Task interface {
	// Cancel prevents the action from running. It reports false if the
	// action already ran or was already cancelled.
	Cancel() bool
}

// TimerScheduler implements Scheduler using time.AfterFunc
type TimerScheduler struct{}

// New creates a new TimerScheduler
func New() *TimerScheduler {
	return &TimerScheduler{}
}

// AfterFunc schedules f on its own goroutine after d
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return &timerTask{timer: time.AfterFunc(d, f)}
}

type timerTask struct {
	timer *time.Timer
}

func (t *timerTask) Cancel() bool {
	return t.timer.Stop()
}
