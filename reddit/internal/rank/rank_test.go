package rank

import (
	"testing"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

func ratio(v float64) *float64 { return &v }

func TestByPopularityPrefersEngagementOverStaleScore(t *testing.T) {
	// High archived score but almost no engagement versus a lower-scored
	// post with a busy, well-upvoted thread.
	stale := types.Post{ID: "stale", Score: 5000, NumComments: 2, UpvoteRatio: ratio(0.5)}
	busy := types.Post{ID: "busy", Score: 40, NumComments: 900, UpvoteRatio: ratio(0.95)}

	posts := []types.Post{stale, busy}
	ByPopularity(posts)

	if posts[0].ID != "busy" {
		t.Errorf("posts[0] = %s, want busy (synthetic score must outrank raw score)", posts[0].ID)
	}
}

func TestByPopularityTieBreaksByRecency(t *testing.T) {
	a := types.Post{ID: "old", NumComments: 10, UpvoteRatio: ratio(0.8), CreatedUTC: 100}
	b := types.Post{ID: "new", NumComments: 10, UpvoteRatio: ratio(0.8), CreatedUTC: 200}

	posts := []types.Post{a, b}
	ByPopularity(posts)

	if posts[0].ID != "new" {
		t.Errorf("posts[0] = %s, want new (ties break by created_utc descending)", posts[0].ID)
	}
}

func TestByPopularityFallsBackToRawScoreWhenRatioMissing(t *testing.T) {
	// One post without a ratio poisons the synthetic scale for the whole
	// set; the sort must fall back to raw score rather than invent a ratio.
	posts := []types.Post{
		{ID: "a", Score: 10, NumComments: 500, UpvoteRatio: ratio(0.99)},
		{ID: "b", Score: 300, NumComments: 1},
	}
	ByPopularity(posts)

	if posts[0].ID != "b" {
		t.Errorf("posts[0] = %s, want b (raw-score fallback when any ratio is missing)", posts[0].ID)
	}
}

func TestByFieldSorts(t *testing.T) {
	posts := []types.Post{
		{ID: "a", Score: 1, NumComments: 30, CreatedUTC: 300},
		{ID: "b", Score: 3, NumComments: 10, CreatedUTC: 100},
		{ID: "c", Score: 2, NumComments: 20, CreatedUTC: 200},
	}

	ByField(posts, types.SortScore)
	if posts[0].ID != "b" || posts[2].ID != "a" {
		t.Errorf("score sort order = %s,%s,%s", posts[0].ID, posts[1].ID, posts[2].ID)
	}

	ByField(posts, types.SortNumComments)
	if posts[0].ID != "a" || posts[2].ID != "b" {
		t.Errorf("num_comments sort order = %s,%s,%s", posts[0].ID, posts[1].ID, posts[2].ID)
	}

	ByField(posts, types.SortCreatedUTC)
	if posts[0].ID != "a" || posts[2].ID != "b" {
		t.Errorf("created_utc sort order = %s,%s,%s", posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestByFieldDeterministicOnEqualKeys(t *testing.T) {
	posts := []types.Post{
		{ID: "older", Score: 7, CreatedUTC: 50},
		{ID: "newer", Score: 7, CreatedUTC: 90},
	}
	ByField(posts, types.SortScore)
	if posts[0].ID != "newer" {
		t.Errorf("posts[0] = %s, want newer", posts[0].ID)
	}
}
