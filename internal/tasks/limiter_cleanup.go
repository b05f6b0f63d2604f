package tasks

import (
	"context"
	"time"

	"github.com/osa911/contactform/internal/logging"
)

// Pruner drops rate limit windows that have expired
type Pruner interface {
	Prune(now time.Time) int
	Len() int
}

// LimiterCleanup handles periodic eviction of expired rate limit windows
type LimiterCleanup struct {
	limiter  Pruner
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

// NewLimiterCleanup creates a new cleanup task
func NewLimiterCleanup(limiter Pruner, interval time.Duration, logger *logging.Logger) *LimiterCleanup {
	return &LimiterCleanup{
		limiter:  limiter,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins the cleanup task in the background. It stops when ctx is
// cancelled. A non-positive interval disables the task.
func (lc *LimiterCleanup) Start(ctx context.Context) {
	if lc.interval <= 0 {
		lc.logger.Info("Rate limit cleanup disabled")
		return
	}
	go lc.runPeriodically(ctx)
}

// runPeriodically runs the cleanup task at regular intervals
func (lc *LimiterCleanup) runPeriodically(ctx context.Context) {
	ticker := time.NewTicker(lc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lc.RunOnce()
		}
	}
}

// RunOnce performs a single cleanup pass and returns how many keys were evicted
func (lc *LimiterCleanup) RunOnce() int {
	removed := lc.limiter.Prune(lc.now())
	if removed > 0 {
		lc.logger.Debug("Rate limit cleanup evicted %d keys, %d remain", removed, lc.limiter.Len())
	}
	return removed
}
