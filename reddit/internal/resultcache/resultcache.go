// Package resultcache keeps recently returned result sets around so a
// follow-up request can refine them (for example with a larger text budget)
// without hitting the backends again.
package resultcache

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

const (
	// DefaultTTL bounds how long a stored result set stays retrievable.
	DefaultTTL = 15 * time.Minute

	// DefaultMaxEntries caps retained result sets; the oldest is evicted
	// when the cap is reached.
	DefaultMaxEntries = 32
)

// Cache is a TTL- and capacity-bounded store of untruncated result sets
// keyed by opaque ids. Retrieval of an expired or evicted id is a plain
// miss, never an error: the caller treats it as "re-fetch".
type Cache struct {
	store      *gocache.Cache
	maxEntries int
}

// New constructs a Cache. Non-positive arguments select the defaults.
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		store:      gocache.New(ttl, ttl),
		maxEntries: maxEntries,
	}
}

// Store saves a copy of posts and returns the opaque id that retrieves it.
func (c *Cache) Store(posts []types.Post) string {
	// ItemCount includes expired-but-unswept entries; sweep first so the
	// cap only ever evicts a live entry.
	if c.store.ItemCount() >= c.maxEntries {
		c.store.DeleteExpired()
	}
	if c.store.ItemCount() >= c.maxEntries {
		c.evictOldest()
	}
	id := uuid.NewString()
	c.store.SetDefault(id, append([]types.Post(nil), posts...))
	return id
}

// Get returns the stored result set, or false when the id is unknown,
// expired, or evicted.
func (c *Cache) Get(id string) ([]types.Post, bool) {
	v, ok := c.store.Get(id)
	if !ok {
		return nil, false
	}
	return v.([]types.Post), true
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestExp int64
	for key, item := range c.store.Items() {
		if oldestKey == "" || item.Expiration < oldestExp {
			oldestKey, oldestExp = key, item.Expiration
		}
	}
	if oldestKey != "" {
		c.store.Delete(oldestKey)
	}
}
