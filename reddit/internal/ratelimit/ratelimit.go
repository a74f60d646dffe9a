// Package ratelimit gates the live-backend lane with a shared token bucket.
//
// One Limiter is constructed per process and injected wherever the live
// backend is called; the remote quota is per-origin, not per-request, so the
// bucket must be shared across all concurrent requests.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var acquireWait = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "reddit_data",
		Name:      "ratelimit_acquire_wait_seconds",
		Help:      "Time spent blocked in Acquire waiting for a live-lane token.",
		Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	},
)

const (
	// DefaultBurst is the bucket capacity.
	DefaultBurst = 3

	// DefaultRefillPerMinute is the steady refill rate.
	DefaultRefillPerMinute = 3

	// maxJitter is added to each successful wait to desynchronize
	// concurrent callers that exhausted the bucket together.
	maxJitter = 500 * time.Millisecond
)

// Limiter is a blocking token bucket for the live lane. Acquire never fails
// on exhaustion; it waits until a token refills or the context is canceled.
type Limiter struct {
	bucket    *rate.Limiter
	jitterCap time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Limiter with capacity burst refilling at perMinute
// tokens per minute. Non-positive arguments select the defaults.
func New(burst, perMinute int) *Limiter {
	if burst <= 0 {
		burst = DefaultBurst
	}
	if perMinute <= 0 {
		perMinute = DefaultRefillPerMinute
	}
	return &Limiter{
		bucket:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		jitterCap: maxJitter,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Acquire blocks until a token is available and returns the total time
// waited. When the bucket was empty a small random jitter is added to the
// wait so concurrent callers that exhausted it together do not retry in
// lockstep. The only error Acquire can return is the context's; exhaustion
// blocks, it never fails.
func (l *Limiter) Acquire(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := l.bucket.Wait(ctx); err != nil {
		return time.Since(start), err
	}

	if time.Since(start) > time.Millisecond {
		if j := l.jitter(); j > 0 {
			select {
			case <-time.After(j):
			case <-ctx.Done():
				return time.Since(start), ctx.Err()
			}
		}
	}

	waited := time.Since(start)
	acquireWait.Observe(waited.Seconds())
	return waited, nil
}

// TryAcquire claims a token if one is available right now and reports
// whether it did. It never blocks; the claim is atomic, so concurrent
// callers cannot both ride the same token. The orchestrator uses it to
// route comment fetches to the live lane opportunistically.
func (l *Limiter) TryAcquire() bool {
	return l.bucket.Allow()
}

func (l *Limiter) jitter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.jitterCap <= 0 {
		return 0
	}
	return time.Duration(l.rng.Int63n(int64(l.jitterCap)))
}
