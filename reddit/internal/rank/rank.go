// Package rank reorders archival results whose stored scores may be stale.
package rank

import (
	"math"
	"sort"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

// PopularityScore estimates current popularity from engagement signals:
// log(num_comments+1) * upvote_ratio.
func PopularityScore(p types.Post) float64 {
	if p.UpvoteRatio == nil {
		return 0
	}
	return math.Log(float64(p.NumComments)+1) * *p.UpvoteRatio
}

// ByPopularity sorts posts by synthetic popularity, highest first, breaking
// ties by created_utc descending so the order is deterministic. Only applied
// on the archival score-sorted path; live scores are already current.
//
// When any post in the set lacks an upvote ratio the whole set falls back to
// raw score as the sort key: synthetic and raw values are not comparable on
// one scale, and assuming a default ratio would fabricate data.
func ByPopularity(posts []types.Post) {
	for _, p := range posts {
		if p.UpvoteRatio == nil {
			ByField(posts, types.SortScore)
			return
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		si, sj := PopularityScore(posts[i]), PopularityScore(posts[j])
		if si != sj {
			return si > sj
		}
		return posts[i].CreatedUTC > posts[j].CreatedUTC
	})
}

// ByField sorts posts by the requested field directly, descending, with
// created_utc as the deterministic tie break.
func ByField(posts []types.Post, s types.Sort) {
	key := func(p types.Post) int64 {
		switch s {
		case types.SortNumComments:
			return int64(p.NumComments)
		case types.SortCreatedUTC:
			return p.CreatedUTC
		default:
			return int64(p.Score)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		ki, kj := key(posts[i]), key(posts[j])
		if ki != kj {
			return ki > kj
		}
		return posts[i].CreatedUTC > posts[j].CreatedUTC
	})
}
