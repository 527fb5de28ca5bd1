package platform

import (
	"context"
	"errors"
	"time"
)

// permanentError wraps an error that retrying cannot fix.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// permanent marks an error as non-retryable.
func permanent(err error) error { return permanentError{err: err} }

// retryPolicy retries transient failures with doubling backoff.
type retryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Do runs fn, retrying transient errors up to MaxRetries times. Context
// cancellation stops the loop immediately.
func (p retryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.BaseDelay
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= p.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
