package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"automix-bot/internal/core/domain"
)

// Service runs the reconciler on a fixed interval.
type Service struct {
	reconciler *Reconciler
	interval   time.Duration
}

func NewService(reconciler *Reconciler, interval time.Duration) *Service {
	return &Service{reconciler: reconciler, interval: interval}
}

func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Leaderboard service started", "interval", s.interval)

	s.runLoop(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runLoop(ctx)
		}
	}
}

// RunOnce performs a single cycle and reports its error.
func (s *Service) RunOnce(ctx context.Context) error {
	return s.reconciler.RunCycle(ctx)
}

func (s *Service) runLoop(ctx context.Context) {
	err := s.reconciler.RunCycle(ctx)
	if errors.Is(err, domain.ErrCycleInFlight) {
		slog.Debug("Skipping leaderboard tick, previous cycle still running")
	}
}
