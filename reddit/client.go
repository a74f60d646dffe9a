// Package reddit is a read-only data-access SDK for Reddit content. It fans
// out to public archival and live HTTP sources, normalizes their responses
// into one post/comment schema, and applies ranking, truncation, and
// rate-limit policy. No Reddit API credentials are required.
package reddit

import (
	"net/http"
	"time"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/backends"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/ratelimit"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/resultcache"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	http *http.Client

	archival backends.Backend
	live     backends.Backend
	limiter  *ratelimit.Limiter
	cache    *resultcache.Cache

	archivalBaseURL string
	liveBaseURL     string
	userAgent       string

	overfetch      int
	commentWorkers int
	cacheDisabled  bool
}

const (
	// defaultOverfetch is how many times the caller's limit is requested
	// from the archival backend before reranking, since archived scores can
	// be stale. Capped at the backend page size.
	defaultOverfetch = 3

	// defaultCommentWorkers bounds parallel comment fetches per request.
	defaultCommentWorkers = 8
)

// New constructs a Client. One Client (and therefore one rate-limiter token
// bucket) should be shared per process; the live backend's quota is
// per-origin, not per-request.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:           &http.Client{Timeout: 30 * time.Second},
		overfetch:      defaultOverfetch,
		commentWorkers: defaultCommentWorkers,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.limiter == nil {
		c.limiter = ratelimit.New(ratelimit.DefaultBurst, ratelimit.DefaultRefillPerMinute)
	}
	if c.archival == nil {
		c.archival = backends.NewPullPush(c.http, c.archivalBaseURL)
	}
	if c.live == nil {
		c.live = backends.NewLive(c.http, c.liveBaseURL, c.userAgent)
	}
	if c.cache == nil && !c.cacheDisabled {
		c.cache = resultcache.New(resultcache.DefaultTTL, resultcache.DefaultMaxEntries)
	}
	return c, nil
}
