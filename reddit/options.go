package reddit

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/backends"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/ratelimit"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/resultcache"
)

// Option configures a Client during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used for every
// backend call. Prefer per-request context deadlines where possible; this
// is a coarse safety net. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithRateLimiter injects the live-lane limiter. The bucket is process-wide
// shared state; pass the same limiter to every Client that talks to the
// same origin. Mostly useful for tests needing isolated buckets.
func WithRateLimiter(burst, perMinute int) Option {
	return func(c *Client) error {
		if burst < 1 {
			return fmt.Errorf("limiter burst must be >= 1")
		}
		c.limiter = ratelimit.New(burst, perMinute)
		return nil
	}
}

// WithArchivalBaseURL points the archival adapter at a different endpoint,
// e.g. an httptest server.
func WithArchivalBaseURL(u string) Option {
	return func(c *Client) error {
		c.archivalBaseURL = u
		return nil
	}
}

// WithLiveBaseURL points the live adapter at a different endpoint.
func WithLiveBaseURL(u string) Option {
	return func(c *Client) error {
		c.liveBaseURL = u
		return nil
	}
}

// WithUserAgent overrides the User-Agent sent to the live backend.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua == "" {
			return fmt.Errorf("user agent must not be empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithOverfetchMultiplier tunes how many times the requested limit is
// fetched from the archival backend before reranking. The effective fetch
// size is always capped at the backend's page size.
func WithOverfetchMultiplier(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("overfetch multiplier must be >= 1")
		}
		c.overfetch = n
		return nil
	}
}

// WithCommentWorkers bounds how many comment fetches run in parallel within
// one search.
func WithCommentWorkers(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("comment workers must be >= 1")
		}
		c.commentWorkers = n
		return nil
	}
}

// WithResultCache sizes the follow-up result cache.
func WithResultCache(ttl time.Duration, maxEntries int) Option {
	return func(c *Client) error {
		c.cache = resultcache.New(ttl, maxEntries)
		return nil
	}
}

// WithoutResultCache disables result caching; Search responses carry no
// result id and GetResult always reports ErrNotFound.
func WithoutResultCache() Option {
	return func(c *Client) error {
		c.cacheDisabled = true
		c.cache = nil
		return nil
	}
}

// withBackends swaps both adapters; used by tests to install fakes.
func withBackends(archival, live backends.Backend) Option {
	return func(c *Client) error {
		c.archival = archival
		c.live = live
		return nil
	}
}
