package engine

import (
	"context"
	"time"

	"github.com/karashiro/jobtrack-api/internal/logger"
)

// Scheduler runs scan passes on a fixed interval until the context is
// canceled. A failed pass is logged and retried on the next tick.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(engine *Engine, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{engine: engine, interval: interval, log: log}
}

// Run blocks until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("reminder scheduler started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			result, err := s.engine.Scan(ctx, time.Now())
			if err != nil {
				s.log.Error("reminder scan failed", "error", err)
				continue
			}
			if result.Sent > 0 || result.Deferred > 0 {
				s.log.Info("reminder scan completed", "sent", result.Sent, "deferred", result.Deferred)
			}
		}
	}
}
