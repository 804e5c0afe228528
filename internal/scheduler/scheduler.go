package scheduler

import (
	"context"
	"log/slog"
	"time"

	"safetube/internal/domain"
)

// Refresher re-fetches the current profile so its cache stays warm.
type Refresher interface {
	Refresh(ctx context.Context) (*domain.FetchStats, error)
}

type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

func NewScheduler(refresher Refresher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.runRefresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRefresh(ctx)
		}
	}
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.refresher.Refresh(refreshCtx)
	if err != nil {
		s.logger.Error("refresh failed", "error", err)
		return
	}

	s.logger.Info("refresh completed",
		"profile_id", stats.ProfileID,
		"source", stats.Source,
		"channels", stats.Channels,
		"failed", stats.Failed,
		"videos", stats.Videos,
		"duration", stats.Duration,
	)
}
