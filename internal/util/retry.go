package util

import (
	"context"
	"time"
)

// Retry calls fn up to maxAttempts times, sleeping baseDelay after the first
// failure and doubling the delay after each further one. It returns nil on
// the first success or the last error once attempts are exhausted. A
// maxAttempts below one is treated as one.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	delay := baseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
