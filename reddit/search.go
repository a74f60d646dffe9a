package reddit

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/backends"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/rank"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/textclip"
	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

// Search runs one retrieval pipeline pass: route to backend(s), fall back,
// rerank, fetch comments, truncate. The untruncated result set is cached
// under the response's ResultID for follow-up refinement via GetResult.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := req.Normalize(); err != nil {
		searchesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	posts, err := c.fetchPosts(ctx, req)
	if err != nil {
		searchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if req.IncludeComments && req.CommentsPerPost > 0 {
		c.attachComments(ctx, posts, req.CommentsPerPost)
	}

	var resultID string
	if c.cache != nil {
		resultID = c.cache.Store(posts)
	}

	searchesTotal.WithLabelValues("ok").Inc()
	clipped := clipPosts(posts, req.MaxText)
	return &SearchResponse{Posts: clipped, Count: len(clipped), ResultID: resultID}, nil
}

// GetResult re-emits a previously cached result set under a new text
// budget, without touching any backend. Unknown, expired, or evicted ids
// return ErrNotFound; the caller should re-search.
func (c *Client) GetResult(id string, maxText int) (*SearchResponse, error) {
	if c.cache == nil {
		return nil, ErrNotFound
	}
	posts, ok := c.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if maxText < 0 {
		maxText = 0
	}
	clipped := clipPosts(posts, maxText)
	return &SearchResponse{Posts: clipped, Count: len(clipped), ResultID: id}, nil
}

// fetchPosts applies the routing policy. Subreddit-scoped requests try the
// archive first and fall back to the live lane when the archive errors or
// is empty; global requests go straight to the live lane, which is the only
// backend with usable global coverage.
func (c *Client) fetchPosts(ctx context.Context, req SearchRequest) ([]types.Post, error) {
	if req.Subreddit == "" {
		return c.fetchLive(ctx, req)
	}

	posts, err := c.fetchArchival(ctx, req)
	if err == nil && len(posts) > 0 {
		return posts, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("subreddit", req.Subreddit).Msg("archival fetch failed, falling back to live")
	}
	fallbacksTotal.Inc()
	return c.fetchLive(ctx, req)
}

// fetchArchival overfetches candidates for the score sort, since archived
// scores are ingest-time snapshots, then reranks and trims to the caller's
// limit. Recency and comment-count sorts use the field directly.
func (c *Client) fetchArchival(ctx context.Context, req SearchRequest) ([]types.Post, error) {
	size := req.Limit
	if req.Sort == SortScore {
		size = req.Limit * c.overfetch
		if size > types.MaxLimit {
			size = types.MaxLimit
		}
	}

	posts, err := c.archival.FetchPosts(ctx, backends.Query{
		Text:       req.Query,
		Subreddit:  req.Subreddit,
		Sort:       req.Sort,
		TimeFilter: req.TimeFilter,
		Size:       size,
	})
	if err != nil {
		return nil, err
	}

	if req.Sort == SortScore {
		rank.ByPopularity(posts)
	} else {
		rank.ByField(posts, req.Sort)
	}
	if len(posts) > req.Limit {
		posts = posts[:req.Limit]
	}
	return posts, nil
}

// fetchLive gates one call through the shared token bucket. Live scores are
// current, so no overfetch or synthetic rerank is applied; results are
// ordered by the requested field for determinism.
func (c *Client) fetchLive(ctx context.Context, req SearchRequest) ([]types.Post, error) {
	waited, err := c.limiter.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("waited", waited).Msg("acquired live-lane token")

	posts, err := c.live.FetchPosts(ctx, backends.Query{
		Text:       req.Query,
		Subreddit:  req.Subreddit,
		Sort:       req.Sort,
		TimeFilter: req.TimeFilter,
		Size:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	rank.ByField(posts, req.Sort)
	if len(posts) > req.Limit {
		posts = posts[:req.Limit]
	}
	return posts, nil
}

// attachComments fetches comments for each post on a bounded worker pool.
// Each post's fetch is independent: a failure leaves that post with an
// empty comment list and the batch continues, since partial data is more
// useful downstream than a failed batch.
func (c *Client) attachComments(ctx context.Context, posts []types.Post, perPost int) {
	sem := make(chan struct{}, c.commentWorkers)
	var wg sync.WaitGroup
	for i := range posts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			comments, err := c.fetchCommentsForPost(ctx, posts[i].ID, perPost)
			if err != nil {
				log.Warn().Err(err).Str("post_id", posts[i].ID).Msg("comment fetch failed, returning post without comments")
				return
			}
			posts[i].Comments = comments
		}(i)
	}
	wg.Wait()
}

// fetchCommentsForPost prefers the live lane when a token can be claimed
// without waiting, otherwise uses the archive without touching the bucket.
func (c *Client) fetchCommentsForPost(ctx context.Context, postID string, perPost int) ([]types.Comment, error) {
	if c.limiter.TryAcquire() {
		return c.live.FetchComments(ctx, postID, perPost)
	}
	return c.archival.FetchComments(ctx, postID, perPost)
}

// clipPosts returns a truncated copy of posts; the originals stay intact in
// the result cache so a follow-up can re-clip with a larger budget.
func clipPosts(posts []types.Post, maxText int) []types.Post {
	out := make([]types.Post, len(posts))
	for i, p := range posts {
		p.SelfText = textclip.Clip(p.SelfText, maxText)
		if len(p.Comments) > 0 {
			comments := make([]types.Comment, len(p.Comments))
			for j, cm := range p.Comments {
				cm.Body = textclip.Clip(cm.Body, maxText)
				comments[j] = cm
			}
			p.Comments = comments
		}
		out[i] = p
	}
	return out
}
