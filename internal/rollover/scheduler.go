package rollover

import (
	"context"
	"time"

	"budget/internal/log"
)

// Checker is the part of Engine the scheduler drives.
type Checker interface {
	Check(ctx context.Context) (Status, error)
}

// Scheduler re-checks the month boundary on a fixed interval.
type Scheduler struct {
	checker  Checker
	interval time.Duration
	logger   *log.Logger
}

func NewScheduler(checker Checker, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		checker:  checker,
		interval: interval,
		logger:   log.ForComponent(log.ComponentRollover),
	}
}

// Run checks once immediately and then every interval until ctx is done.
// Check failures are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Rollover scheduler started", "interval", s.interval.String())
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.check(ctx)
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Rollover scheduler stopped")
			return nil
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	status, err := s.checker.Check(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Month check failed", log.FieldOperation, log.OpCheck, log.FieldError, err)
		return
	}
	if status.State == Pending {
		s.logger.InfoContext(ctx, "Rollover awaiting confirmation", log.FieldMonth, status.StoredMonth)
	}
}
