package registry

import (
	"context"
	"time"
)

// doWithRetry runs fn up to the client's attempt budget. Only failures
// marked retryable (transport errors, 5xx) earn another attempt; the
// delay before attempt n is unit<<(n-2), so 1x then 2x the unit, and the
// upcoming attempt is announced before the sleep. Exhausting the budget
// surfaces the last cause wrapped in a *TransientError.
func (c *Client) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := c.unit << (attempt - 2)
			c.announce(attempt, delay)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return &TransientError{Attempts: c.attempts, Err: unwrapRetryable(lastErr)}
}
