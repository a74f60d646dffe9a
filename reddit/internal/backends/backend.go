package backends

import (
	"context"
	"time"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

// Query is the backend-neutral search shape. Adapters translate it into
// their own field names and filters.
type Query struct {
	Text       string
	Subreddit  string
	Sort       types.Sort
	TimeFilter types.TimeFilter
	Size       int
}

// Backend is one external data source. Implementations must distinguish
// "zero results" (nil error, empty slice) from failure (*FetchError); the
// orchestrator's fallback depends on that distinction.
type Backend interface {
	// Name returns the source indicator stamped onto returned posts.
	Name() string

	// FetchPosts runs one submission search.
	FetchPosts(ctx context.Context, q Query) ([]types.Post, error)

	// FetchComments returns up to limit comments for a post, filtered of
	// removed/deleted bodies, in backend-reported order.
	FetchComments(ctx context.Context, postID string, limit int) ([]types.Comment, error)
}

// afterEpoch converts a time filter into the earliest acceptable
// created_utc, or 0 for "all".
func afterEpoch(tf types.TimeFilter, now time.Time) int64 {
	var seconds int64
	switch tf {
	case types.TimeDay:
		seconds = 86400
	case types.TimeWeek:
		seconds = 7 * 86400
	case types.TimeMonth:
		seconds = 30 * 86400
	case types.TimeYear:
		seconds = 365 * 86400
	default:
		return 0
	}
	return now.Unix() - seconds
}

// dropSentinelBody reports whether a comment body is a removal placeholder.
// Such comments are dropped entirely, never returned as empty strings.
func dropSentinelBody(body string) bool {
	return body == "" || body == "[removed]" || body == "[deleted]"
}
