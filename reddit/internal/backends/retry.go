package backends

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

const (
	maxRetries  = 1
	baseBackoff = 250 * time.Millisecond
)

// withRetry runs fn, retrying once with short backoff when the failure is
// classified retryable. Transient errors beyond that surface to the caller.
// A retry repeats the HTTP call only; limiter acquisition happens before
// the adapter call, so it is never charged twice.
func withRetry(ctx context.Context, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = baseBackoff
	exp.Multiplier = 2

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, maxRetries), ctx)
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
