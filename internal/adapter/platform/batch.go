package platform

import (
	"context"
	"time"
)

// InBatches applies fn to items in fixed-size chunks with a pacing
// delay between chunks, respecting the platforms' external rate limits.
// fn failures are the caller's to count; InBatches itself only stops on
// context cancellation.
func InBatches[T any](ctx context.Context, items []T, chunkSize int, pace time.Duration, fn func(item T)) error {
	if chunkSize <= 0 {
		chunkSize = len(items)
	}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(item)
		if pace > 0 && (i+1)%chunkSize == 0 && i+1 < len(items) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pace):
			}
		}
	}
	return nil
}
