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

// DefaultLiveBaseURL is the public reddit.com JSON surface.
const DefaultLiveBaseURL = "https://www.reddit.com"

// DefaultUserAgent identifies this tool to reddit.com. Requests with a
// default Go user agent are aggressively throttled.
const DefaultUserAgent = "reddit-data-mcp/0.2 (read-only data tool)"

// Live is the reddit.com adapter. Scores are current, global search works,
// but the lane is quota-limited: callers must gate it through the rate
// limiter before invoking FetchPosts or FetchComments.
type Live struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewLive constructs the live adapter. Empty baseURL and userAgent select
// the defaults.
func NewLive(httpClient *http.Client, baseURL, userAgent string) *Live {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultLiveBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Live{http: httpClient, baseURL: baseURL, userAgent: userAgent}
}

func (l *Live) Name() string { return string(types.SourceReddit) }

type liveThing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type liveListing struct {
	Data struct {
		Children []liveThing `json:"children"`
	} `json:"data"`
}

type liveSubmission struct {
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

type liveComment struct {
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Body       string  `json:"body"`
	CreatedUTC float64 `json:"created_utc"`
}

// FetchPosts searches live submissions. An empty query browses the
// subreddit listing (or the front page for a global browse).
func (l *Live) FetchPosts(ctx context.Context, q Query) ([]types.Post, error) {
	var listing liveListing
	if err := l.getJSON(ctx, "fetch_posts", l.postsURL(q), &listing); err != nil {
		return nil, err
	}

	posts := make([]types.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var s liveSubmission
		if err := json.Unmarshal(child.Data, &s); err != nil {
			return nil, malformedError(l.Name(), "fetch_posts", fmt.Errorf("decode submission: %w", err))
		}
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
			Source:      types.SourceReddit,
		})
	}
	return posts, nil
}

// FetchComments fetches the comment tree for a post and flattens its
// top-level replies, best first.
func (l *Live) FetchComments(ctx context.Context, postID string, limit int) ([]types.Comment, error) {
	if limit <= 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampSize(limit)))
	params.Set("sort", "top")
	params.Set("raw_json", "1")

	// The comments endpoint answers with a two-element array: the post
	// listing, then the comment listing.
	var listings []liveListing
	if err := l.getJSON(ctx, "fetch_comments", fmt.Sprintf("%s/comments/%s.json?%s", l.baseURL, postID, params.Encode()), &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return nil, malformedError(l.Name(), "fetch_comments", fmt.Errorf("expected 2 listings, got %d", len(listings)))
	}

	var comments []types.Comment
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var c liveComment
		if err := json.Unmarshal(child.Data, &c); err != nil {
			return nil, malformedError(l.Name(), "fetch_comments", fmt.Errorf("decode comment: %w", err))
		}
		if dropSentinelBody(c.Body) {
			continue
		}
		comments = append(comments, types.Comment{
			Author:     authorOrDeleted(c.Author),
			Score:      c.Score,
			Body:       c.Body,
			CreatedUTC: int64(c.CreatedUTC),
			Source:     types.SourceReddit,
		})
		if len(comments) == limit {
			break
		}
	}
	return comments, nil
}

func (l *Live) postsURL(q Query) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampSize(q.Size)))
	params.Set("raw_json", "1")

	if q.Text == "" {
		// Browse: hit the listing endpoints directly, search needs a query.
		listing := "top"
		if q.Sort == types.SortCreatedUTC {
			listing = "new"
		} else {
			params.Set("t", string(q.TimeFilter))
		}
		if q.Subreddit != "" {
			return fmt.Sprintf("%s/r/%s/%s.json?%s", l.baseURL, q.Subreddit, listing, params.Encode())
		}
		return fmt.Sprintf("%s/%s.json?%s", l.baseURL, listing, params.Encode())
	}

	params.Set("q", q.Text)
	params.Set("sort", liveSort(q.Sort))
	params.Set("t", string(q.TimeFilter))
	if q.Subreddit != "" {
		params.Set("restrict_sr", "on")
		return fmt.Sprintf("%s/r/%s/search.json?%s", l.baseURL, q.Subreddit, params.Encode())
	}
	return l.baseURL + "/search.json?" + params.Encode()
}

// liveSort maps the request sort onto reddit's search sort values.
func liveSort(s types.Sort) string {
	switch s {
	case types.SortNumComments:
		return "comments"
	case types.SortCreatedUTC:
		return "new"
	default:
		return "top"
	}
}

func (l *Live) getJSON(ctx context.Context, op, rawURL string, out any) error {
	return withRetry(ctx, func() error {
		start := time.Now()
		err := l.getJSONOnce(ctx, op, rawURL, out)
		observeRequest(l.Name(), op, time.Since(start).Seconds(), err)
		return err
	})
}

func (l *Live) getJSONOnce(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return malformedError(l.Name(), op, err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return networkError(l.Name(), op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(l.Name(), resp.StatusCode, op)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformedError(l.Name(), op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
