package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PassFunc runs one reconciliation pass.
type PassFunc func(ctx context.Context) (*PassResult, error)

// Scheduler runs a pass immediately and then once per interval until its
// context is cancelled. Passes run on the scheduler goroutine, so a pass that
// outlasts the interval delays the next one instead of overlapping it; the
// ticks missed meanwhile are dropped.
type Scheduler struct {
	interval time.Duration
	run      PassFunc
	logger   *zap.Logger

	mu      sync.RWMutex
	status  Status
	trigger chan struct{}
}

// Status is the outcome of the most recent pass.
type Status struct {
	// Passes counts completed or aborted passes since start.
	Passes int `json:"passes"`

	// LastRun is when the most recent pass started.
	LastRun time.Time `json:"last_run"`

	// LastResult is the most recent successful pass, nil before the first one.
	LastResult *PassResult `json:"last_result,omitempty"`

	// LastError is the error of the most recent pass, empty when it succeeded.
	LastError string `json:"last_error,omitempty"`
}

// NewScheduler creates a scheduler for the pass function.
func NewScheduler(interval time.Duration, run PassFunc, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		interval: interval,
		run:      run,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Start blocks, running passes until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		case <-s.trigger:
			s.tick(ctx)
		}
	}
}

// Trigger requests an extra pass as soon as the current one, if any, ends.
// Requests made while one is already pending are coalesced.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Status returns the outcome of the most recent pass.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) tick(ctx context.Context) {
	started := time.Now()
	result, err := s.run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Passes++
	s.status.LastRun = started
	if err != nil {
		s.status.LastError = err.Error()
		// Next tick retries from scratch
		s.logger.Error("Scheduled pass failed", zap.Error(err))
		return
	}
	s.status.LastError = ""
	s.status.LastResult = result
}
