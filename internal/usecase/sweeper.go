package usecase

import (
	"context"
	"time"

	"lodge-booking/internal/data/repository"
	"lodge-booking/pkg/metrics"
	"lodge-booking/pkg/utils"

	"go.uber.org/zap"
)

// Sweeper cancels pending bookings that outlived the grace window, releasing
// the capacity they hold. Until a sweep (or an explicit user action) cancels
// them, stale holds keep blocking reservations on purpose.
type Sweeper struct {
	repo     *repository.Repository
	interval time.Duration
	grace    time.Duration
	log      *zap.Logger
	now      func() time.Time
	stop     chan struct{}
}

func NewSweeper(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: time.Duration(config.Booking.SweepIntervalSeconds) * time.Second,
		grace:    time.Duration(config.Booking.GraceMinutes) * time.Minute,
		log:      log.With(zap.String("worker", "sweeper")),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("grace", s.grace),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped", zap.Error(ctx.Err()))
			return
		case <-s.stop:
			s.log.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stop)
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.grace)

	cancelled, err := s.repo.Booking.SweepExpired(ctx, cutoff)
	if err != nil {
		s.log.Error("Sweep failed", zap.Error(err))
		return
	}

	if cancelled > 0 {
		metrics.AddSweeperCancelled(cancelled)
		s.log.Info("Sweep released expired holds",
			zap.Int("cancelled", cancelled),
			zap.Time("cutoff", cutoff),
		)
	}
}
