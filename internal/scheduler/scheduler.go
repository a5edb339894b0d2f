// Package scheduler runs one-shot deferred callbacks for reminders.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler fires callbacks once after a delay. There is no per-reminder
// cancellation; a scheduled reminder always fires unless the scheduler is
// stopped (process shutdown) first.
type Scheduler struct {
	logger  *slog.Logger
	timers  map[string]*time.Timer
	mu      sync.Mutex
	stopped bool
}

// Option configures the scheduler.
type Option func(*Scheduler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger: slog.Default(),
		timers: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// After schedules fn to run once after delay and returns the job id.
// The callback runs on its own goroutine; a stopped scheduler returns an
// empty id and schedules nothing.
func (s *Scheduler) After(delay time.Duration, fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ""
	}

	id := uuid.NewString()
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		s.logger.Debug("scheduled job firing", "job_id", id)
		fn()
	})

	s.logger.Debug("job scheduled", "job_id", id, "delay", delay)
	return id
}

// Pending returns the number of jobs that have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all pending jobs and rejects new ones. Callbacks already in
// flight are not interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
