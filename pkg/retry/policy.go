package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy is an explicit, testable description of how an operation is retried:
// attempt cap, exponential backoff schedule, and which errors are worth
// retrying at all.
type Policy struct {
	MaxAttempts  uint
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Retryable decides if an error is transient. A nil predicate retries
	// every error.
	Retryable func(error) bool
}

// DefaultPolicy mirrors the completion-service retry contract: up to 5
// attempts with exponential backoff seeded at 2s and capped at 30s.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Retryable:    retryable,
	}
}

// Do runs op under the policy. Non-retryable errors surface immediately;
// retryable ones are reattempted until the attempt cap is hit.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.MaxInterval = p.MaxDelay

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxAttempts))
}
