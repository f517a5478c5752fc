package scheduler

import (
	"context"
	"log"
	"time"
)

// RunFunc is one pipeline invocation.
type RunFunc func(ctx context.Context) error

// Scheduler triggers the pipeline once at start and then on a fixed
// interval. The loop is sequential, so runs never overlap in-process; a run
// that outlasts the interval simply delays the next tick.
type Scheduler struct {
	interval time.Duration
	run      RunFunc
}

// New creates a scheduler for the given interval.
func New(interval time.Duration, run RunFunc) *Scheduler {
	return &Scheduler{interval: interval, run: run}
}

// Start blocks until ctx is cancelled. The first run fires immediately.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("scheduler started, running every %v", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.run(ctx); err != nil {
		log.Printf("scheduled run failed: %v", err)
	}
}
