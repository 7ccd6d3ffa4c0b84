package metrics

import (
	"context"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
)

// Sink receives every scheduled snapshot.
type Sink func(ctx context.Context, snap domain.SystemSnapshot)

type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) domain.SystemSnapshot
	sinks    []Sink
}

func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) domain.SystemSnapshot, sinks ...Sink) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      log,
		sample:   sample,
		sinks:    sinks,
	}
}

// Start samples once immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", "interval", s.interval, "sinks", len(s.sinks))

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.log.Info("scheduler stopping...")
			return nil
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || len(s.sinks) == 0 {
		return
	}

	sampleCtx, cancel := context.WithTimeout(ctx, s.interval)
	snap := s.sample(sampleCtx)
	cancel()

	// The sample deadline does not carry over to sinks.
	for _, sink := range s.sinks {
		sink(ctx, snap)
	}
}
