package gateway

import (
	"context"
	"log/slog"
	"time"
)

// withRetry runs fn up to attempts times with exponential backoff starting at
// baseDelay. Only transient failures are retried.
func withRetry(ctx context.Context, logger *slog.Logger, op string, attempts int, baseDelay time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Debug("request succeeded after retry",
					"op", op,
					"attempt", attempt+1)
			}
			return nil
		}
		lastErr = err

		if !IsTransient(err) || ctx.Err() != nil {
			return err
		}

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			logger.Debug("request failed, retrying",
				"op", op,
				"attempt", attempt+1,
				"max_attempts", attempts,
				"retry_delay", delay,
				"error", err)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return NewTransient(op, ctx.Err())
			case <-timer.C:
			}
		}
	}

	logger.Warn("request failed after all retries",
		"op", op,
		"attempts", attempts,
		"error", lastErr)
	return lastErr
}
