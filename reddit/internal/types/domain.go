package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Source identifies which backend produced a post or comment.
type Source string

const (
	// SourcePullPush marks data from the PullPush archival API. Scores and
	// comment counts are ingest-time snapshots and may be stale.
	SourcePullPush Source = "pullpush"

	// SourceReddit marks data from the live reddit.com JSON endpoints.
	SourceReddit Source = "reddit"
)

// Post represents a Reddit submission normalized across backends.
// Identity is the backend-native ID plus subreddit; it is unique within one
// result set but not guaranteed stable across backends.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subreddit   string    `json:"subreddit"`
	Author      string    `json:"author"`
	Score       int       `json:"score"`
	NumComments int       `json:"numComments"`
	UpvoteRatio *float64  `json:"upvoteRatio,omitempty"`
	CreatedUTC  int64     `json:"createdUtc"`
	URL         string    `json:"url"`
	Permalink   string    `json:"permalink,omitempty"`
	SelfText    string    `json:"selfText,omitempty"`
	Source      Source    `json:"source"`
	Comments    []Comment `json:"comments,omitempty"`
}

// Comment represents a single comment on a post. Removed and deleted bodies
// are filtered out during parsing and never reach this type.
type Comment struct {
	Author     string `json:"author"`
	Score      int    `json:"score"`
	Body       string `json:"body"`
	CreatedUTC int64  `json:"createdUtc"`
	Source     Source `json:"source"`
}
