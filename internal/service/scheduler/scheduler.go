package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/fliptime/internal/logger"
)

// DefaultInterval is the clock cadence.
const DefaultInterval = time.Second

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("tick interval must be positive")

// TickFunc handles one tick. The next tick is not taken until it returns.
type TickFunc func(ctx context.Context, now time.Time)

// Scheduler calls a TickFunc once immediately and then on every interval.
type Scheduler struct {
	// clock provides the ticker, fake in tests.
	clock clockwork.Clock
	// interval is the time between ticks.
	interval time.Duration
}

// New creates a scheduler; a nil clock means the real clock.
func New(clock clockwork.Clock, interval time.Duration) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Scheduler{
		clock:    clock,
		interval: interval,
	}
}

// Run blocks, invoking onTick until ctx is canceled.
// Ticks that arrive while onTick is still running are dropped by the ticker.
func (s *Scheduler) Run(ctx context.Context, onTick TickFunc) error {
	if s.interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	logger.DebugKV(ctx, "Scheduler started", "interval", s.interval.String())

	onTick(ctx, s.clock.Now())

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Scheduler stopped")

			return nil
		case now := <-ticker.Chan():
			onTick(ctx, now)
		}
	}
}
