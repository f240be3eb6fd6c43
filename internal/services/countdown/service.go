package countdown

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/quizbingo/internal/dependencies/clock"
	"github.com/mcoot/quizbingo/internal/dependencies/scheduler"
	"github.com/mcoot/quizbingo/internal/model"
)

// Tick is the resolution of the countdown
const Tick = time.Second

// DefaultDuration is the standard turn time
const DefaultDuration = 5 * time.Minute

// State is a point-in-time view of the countdown
type State struct {
	Duration  time.Duration `json:"duration"`
	Remaining time.Duration `json:"remaining"`
	Running   bool          `json:"running"`
}

// Service is the host's turn timer. It is independent of the game session.
type Service struct {
	duration  time.Duration
	clock     clock.Clock
	scheduler scheduler.Scheduler
	logger    *slog.Logger

	mu        sync.Mutex
	remaining time.Duration
	running   bool
	gen       uint64
	task      scheduler.Task
	outbox    []model.Event

	// emitMu is taken before mu, never while holding it
	emitMu      sync.Mutex
	listeners   []func(model.Event)
	listenersMu sync.RWMutex
}

// New creates a stopped countdown showing the full duration
func New(duration time.Duration, clock clock.Clock, scheduler scheduler.Scheduler, logger *slog.Logger) *Service {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Service{
		duration:  duration,
		clock:     clock,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "countdown")),
		remaining: duration,
	}
}

// Subscribe registers a listener for tick and stop events
func (s *Service) Subscribe(fn func(model.Event)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns the current countdown state
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Remaining returns the time left
func (s *Service) Remaining() time.Duration {
	return s.State().Remaining
}

// Running reports whether the countdown is ticking
func (s *Service) Running() bool {
	return s.State().Running
}

// Start resets the countdown to its full duration and starts ticking,
// restarting it if it was already running
func (s *Service) Start() State {
	s.mu.Lock()
	s.cancelLocked()
	s.gen++
	s.remaining = s.duration
	s.running = true
	s.scheduleLocked()

	s.logger.Info("countdown started", slog.Duration("duration", s.duration))
	return s.finish(model.EventTimerTick)
}

// Stop halts the countdown, keeping the remaining time
func (s *Service) Stop() State {
	s.mu.Lock()
	if !s.running {
		state := s.stateLocked()
		s.mu.Unlock()
		return state
	}
	s.cancelLocked()
	s.gen++
	s.running = false

	s.logger.Info("countdown stopped", slog.Duration("remaining", s.remaining))
	return s.finish(model.EventTimerStopped)
}

func (s *Service) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.running {
		s.mu.Unlock()
		return
	}

	s.remaining -= Tick
	eventType := model.EventTimerTick
	if s.remaining <= 0 {
		s.remaining = 0
		s.running = false
		s.task = nil
		eventType = model.EventTimerStopped
		s.logger.Info("countdown expired")
	} else {
		s.scheduleLocked()
	}
	s.finish(eventType)
}

// scheduleLocked arms the next tick. Caller holds mu.
func (s *Service) scheduleLocked() {
	gen := s.gen
	s.task = s.scheduler.AfterFunc(Tick, func() { s.tick(gen) })
}

// cancelLocked disarms the pending tick. Caller holds mu.
func (s *Service) cancelLocked() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
}

func (s *Service) stateLocked() State {
	return State{Duration: s.duration, Remaining: s.remaining, Running: s.running}
}

// finish queues an event for the change, releases mu and delivers queued
// events in the order the changes were made. Caller holds mu.
func (s *Service) finish(eventType model.EventType) State {
	state := s.stateLocked()
	s.outbox = append(s.outbox, model.Event{
		Type:      eventType,
		Timestamp: s.clock.Now(),
		Payload:   model.TimerPayload{Remaining: state.Remaining, Running: state.Running},
	})
	s.mu.Unlock()

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	events := s.outbox
	s.outbox = nil
	s.mu.Unlock()

	s.listenersMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.RUnlock()

	for _, event := range events {
		for _, fn := range listeners {
			fn(event)
		}
	}
	return state
}
