package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

// DefaultPullPushBaseURL is the public PullPush archive endpoint.
const DefaultPullPushBaseURL = "https://api.pullpush.io/reddit"

// PullPush is the archival adapter. It is unthrottled and the preferred
// source for subreddit-scoped queries; its scores are ingest-time snapshots.
type PullPush struct {
	http    *http.Client
	baseURL string
	now     func() time.Time
}

// NewPullPush constructs the archival adapter. baseURL may be empty to use
// the public endpoint.
func NewPullPush(httpClient *http.Client, baseURL string) *PullPush {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultPullPushBaseURL
	}
	return &PullPush{http: httpClient, baseURL: baseURL, now: time.Now}
}

func (p *PullPush) Name() string { return string(types.SourcePullPush) }

type ppSubmission struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subreddit   string   `json:"subreddit"`
	Author      string   `json:"author"`
	Score       int      `json:"score"`
	NumComments int      `json:"num_comments"`
	UpvoteRatio *float64 `json:"upvote_ratio"`
	CreatedUTC  float64  `json:"created_utc"`
	Permalink   string   `json:"permalink"`
	URL         string   `json:"url"`
	SelfText    string   `json:"selftext"`
}

type ppComment struct {
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Body       string  `json:"body"`
	CreatedUTC float64 `json:"created_utc"`
}

// FetchPosts searches archived submissions.
func (p *PullPush) FetchPosts(ctx context.Context, q Query) ([]types.Post, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("size", strconv.Itoa(clampSize(q.Size)))
	params.Set("sort", "desc")
	params.Set("sort_type", string(q.Sort))
	if q.Subreddit != "" {
		params.Set("subreddit", q.Subreddit)
	}
	if after := afterEpoch(q.TimeFilter, p.now()); after > 0 {
		params.Set("after", strconv.FormatInt(after, 10))
	}

	var payload struct {
		Data []ppSubmission `json:"data"`
	}
	if err := p.getJSON(ctx, "fetch_posts", p.baseURL+"/search/submission/?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	posts := make([]types.Post, 0, len(payload.Data))
	for _, s := range payload.Data {
		posts = append(posts, types.Post{
			ID:          s.ID,
			Title:       s.Title,
			Subreddit:   s.Subreddit,
			Author:      authorOrDeleted(s.Author),
			Score:       s.Score,
			NumComments: s.NumComments,
			UpvoteRatio: s.UpvoteRatio,
			CreatedUTC:  int64(s.CreatedUTC),
			URL:         postURL(s.URL, s.Permalink),
			Permalink:   s.Permalink,
			SelfText:    s.SelfText,
			Source:      types.SourcePullPush,
		})
	}
	return posts, nil
}

// FetchComments returns archived comments for a post, highest score first.
func (p *PullPush) FetchComments(ctx context.Context, postID string, limit int) ([]types.Comment, error) {
	if limit <= 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("link_id", postID)
	params.Set("size", strconv.Itoa(clampSize(limit)))
	params.Set("sort", "desc")
	params.Set("sort_type", "score")

	var payload struct {
		Data []ppComment `json:"data"`
	}
	if err := p.getJSON(ctx, "fetch_comments", p.baseURL+"/search/comment/?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	comments := make([]types.Comment, 0, len(payload.Data))
	for _, c := range payload.Data {
		if dropSentinelBody(c.Body) {
			continue
		}
		comments = append(comments, types.Comment{
			Author:     authorOrDeleted(c.Author),
			Score:      c.Score,
			Body:       c.Body,
			CreatedUTC: int64(c.CreatedUTC),
			Source:     types.SourcePullPush,
		})
	}
	return comments, nil
}

func (p *PullPush) getJSON(ctx context.Context, op, rawURL string, out any) error {
	return withRetry(ctx, func() error {
		start := time.Now()
		err := p.getJSONOnce(ctx, op, rawURL, out)
		observeRequest(p.Name(), op, time.Since(start).Seconds(), err)
		return err
	})
}

func (p *PullPush) getJSONOnce(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return malformedError(p.Name(), op, err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return networkError(p.Name(), op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(p.Name(), resp.StatusCode, op)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformedError(p.Name(), op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func clampSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > types.MaxLimit {
		return types.MaxLimit
	}
	return n
}

func authorOrDeleted(author string) string {
	if author == "" {
		return "[deleted]"
	}
	return author
}

// postURL prefers the submission's own URL, synthesizing a reddit.com link
// from the permalink when the backend omits it.
func postURL(rawURL, permalink string) string {
	if rawURL != "" {
		return rawURL
	}
	if permalink != "" {
		return "https://reddit.com" + permalink
	}
	return ""
}
