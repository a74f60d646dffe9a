package backends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

func TestPullPushFetchPostsParsesAndNormalizes(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/submission/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"id": "abc", "title": "Theta decay", "subreddit": "options", "author": "trader1",
			 "score": 120, "num_comments": 45, "upvote_ratio": 0.91, "created_utc": 1700000000.0,
			 "permalink": "/r/options/comments/abc/theta_decay/", "selftext": "body text"},
			{"id": "def", "title": "No author", "subreddit": "options",
			 "score": 3, "num_comments": 0, "created_utc": 1700000100.0,
			 "permalink": "/r/options/comments/def/no_author/"}
		]}`))
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	pp.now = func() time.Time { return time.Unix(1700600000, 0) }

	posts, err := pp.FetchPosts(context.Background(), Query{
		Text:       "theta",
		Subreddit:  "options",
		Sort:       types.SortScore,
		TimeFilter: types.TimeWeek,
		Size:       25,
	})
	if err != nil {
		t.Fatalf("FetchPosts: %v", err)
	}

	if gotQuery.Get("q") != "theta" || gotQuery.Get("subreddit") != "options" {
		t.Errorf("query params = %v", gotQuery)
	}
	if gotQuery.Get("sort_type") != "score" || gotQuery.Get("sort") != "desc" {
		t.Errorf("sort params = %v", gotQuery)
	}
	if gotQuery.Get("size") != "25" {
		t.Errorf("size = %s, want 25", gotQuery.Get("size"))
	}
	// week filter: now minus 7 days
	if gotQuery.Get("after") != "1699995200" {
		t.Errorf("after = %s, want 1699995200", gotQuery.Get("after"))
	}

	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}

	p := posts[0]
	if p.ID != "abc" || p.Title != "Theta decay" || p.Score != 120 || p.NumComments != 45 {
		t.Errorf("post fields = %+v", p)
	}
	if p.UpvoteRatio == nil || *p.UpvoteRatio != 0.91 {
		t.Errorf("UpvoteRatio = %v, want 0.91", p.UpvoteRatio)
	}
	if p.CreatedUTC != 1700000000 {
		t.Errorf("CreatedUTC = %d", p.CreatedUTC)
	}
	if p.Source != types.SourcePullPush {
		t.Errorf("Source = %q, want %q", p.Source, types.SourcePullPush)
	}
	if p.URL != "https://reddit.com/r/options/comments/abc/theta_decay/" {
		t.Errorf("URL = %q (permalink synthesis)", p.URL)
	}

	// Missing fields normalize rather than break.
	if posts[1].Author != "[deleted]" {
		t.Errorf("missing author = %q, want [deleted]", posts[1].Author)
	}
	if posts[1].UpvoteRatio != nil {
		t.Error("absent upvote_ratio must stay nil, never defaulted")
	}
}

func TestPullPushFetchPostsEmptyIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	posts, err := pp.FetchPosts(context.Background(), Query{Text: "nothing", Size: 10, Sort: types.SortScore})
	if err != nil {
		t.Fatalf("zero results must be a valid empty list, got %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0", len(posts))
	}
}

func TestPullPushFetchCommentsFiltersSentinels(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/comment/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("link_id"); got != "abc" {
			t.Errorf("link_id = %s", got)
		}
		_, _ = w.Write([]byte(`{"data": [
			{"author": "u1", "score": 10, "body": "useful answer", "created_utc": 1700000000.0},
			{"author": "u2", "score": 5, "body": "[removed]", "created_utc": 1700000001.0},
			{"author": "u3", "score": 4, "body": "[deleted]", "created_utc": 1700000002.0},
			{"author": "u4", "score": 2, "body": "", "created_utc": 1700000003.0},
			{"author": "u5", "score": 1, "body": "second answer", "created_utc": 1700000004.0}
		]}`))
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	comments, err := pp.FetchComments(context.Background(), "abc", 10)
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2 (sentinels dropped entirely)", len(comments))
	}
	if comments[0].Body != "useful answer" || comments[1].Body != "second answer" {
		t.Errorf("comments = %+v", comments)
	}
}

func TestPullPushClassifiesServerErrorAndRetriesOnce(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	_, err := pp.FetchPosts(context.Background(), Query{Text: "q", Size: 5, Sort: types.SortScore})
	if err == nil {
		t.Fatal("expected an error")
	}

	fe, ok := err.(*FetchError)
	if !ok {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != KindNetwork || fe.StatusCode != http.StatusBadGateway {
		t.Errorf("classification = %v/%d", fe.Kind, fe.StatusCode)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2 (exactly one bounded retry)", n)
	}
}

func TestPullPushDoesNotRetryMalformedResponses(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	_, err := pp.FetchPosts(context.Background(), Query{Text: "q", Size: 5, Sort: types.SortScore})
	if err == nil {
		t.Fatal("expected an error")
	}
	fe, ok := err.(*FetchError)
	if !ok || fe.Kind != KindMalformed {
		t.Fatalf("err = %v, want malformed FetchError", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1 (malformed responses are not transient)", n)
	}
}

func TestPullPushClassifiesRateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	pp := NewPullPush(nil, ts.URL)
	_, err := pp.FetchPosts(context.Background(), Query{Text: "q", Size: 5, Sort: types.SortScore})
	fe, ok := err.(*FetchError)
	if !ok || fe.Kind != KindRateLimited {
		t.Fatalf("err = %v, want rate-limited FetchError", err)
	}
}
