// Package workers schedules the engine's recurring batch passes. A pass
// never overlaps another instance of itself: an in-flight guard skips
// the tick instead of queueing, which keeps the scheduling discipline
// the passes rely on without any storage-level locking.
package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/port"
)

// Run starts the allocation and optimizer tickers and blocks until ctx
// is cancelled.
func Run(ctx context.Context, cfg configs.Worker, allocator port.AllocationRunner, optimizer port.OptimizerRunner, logger *slog.Logger) {
	go runEvery(ctx, "allocation", cfg.AllocationInterval, logger, func(ctx context.Context) error {
		_, err := allocator.Run(ctx, time.Now().UnixNano())
		return err
	})
	go runEvery(ctx, "optimizer", cfg.OptimizerInterval, logger, func(ctx context.Context) error {
		_, err := optimizer.Sweep(ctx)
		return err
	})
	<-ctx.Done()
}

// runEvery fires fn on every tick unless the previous invocation is
// still in flight, in which case the tick is skipped and logged.
func runEvery(ctx context.Context, name string, interval time.Duration, logger *slog.Logger, fn func(context.Context) error) {
	if interval <= 0 {
		return
	}
	var inFlight atomic.Bool

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !inFlight.CompareAndSwap(false, true) {
				logger.Warn("pass still in flight, skipping tick", slog.String("pass", name))
				continue
			}
			go func() {
				defer inFlight.Store(false)
				if err := fn(ctx); err != nil {
					logger.Error("pass failed", slog.String("pass", name), slog.Any("error", err))
				}
			}()
		}
	}
}
