// Package retry wraps remote calls with a rate-limit-aware exponential
// backoff. Only errors the caller's classifier recognizes as rate limiting
// are retried; everything else fails fast on the first attempt.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Policy configures the executor. Pure configuration, no lifecycle.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// Multiplier scales the delay after each retry. Must be >= 1.
	Multiplier float64
}

// DefaultPolicy mirrors the service defaults: three attempts starting at a
// two second delay, doubling each time.
var DefaultPolicy = Policy{
	MaxAttempts:  3,
	InitialDelay: 2 * time.Second,
	Multiplier:   2.0,
}

// Delay returns the wait before retrying after the given attempt (1-based):
// InitialDelay * Multiplier^(attempt-1).
func (p Policy) Delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
	}
	return d
}

// Retryable decides whether an error is worth retrying. It should match the
// remote service's rate-limit signature only.
type Retryable func(error) bool

// Do invokes call, retrying with geometric backoff while retryable reports
// the failure as rate limiting and attempts remain. Any other failure, or a
// rate-limit failure on the final attempt, is returned as-is. Exactly one
// attempt is in flight at a time. Waits honor ctx cancellation.
func Do[T any](ctx context.Context, policy Policy, retryable Retryable, logger *slog.Logger, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		result, err := call(ctx)
		if err == nil {
			return result, nil
		}

		if !retryable(err) || attempt >= policy.MaxAttempts {
			return zero, err
		}

		delay := policy.Delay(attempt)
		logger.Warn("rate limited, retrying",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"delay_ms", delay.Milliseconds(),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
