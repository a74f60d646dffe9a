package reddit

import "github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"

// Public type aliases so SDK consumers can import only the reddit package.
type (
	// Requests
	SearchRequest = types.SearchRequest

	// Domain entities
	Post    = types.Post
	Comment = types.Comment
	Source  = types.Source

	// Responses
	SearchResponse = types.SearchResponse

	// Enums
	Sort       = types.Sort
	TimeFilter = types.TimeFilter
)

// Enum values re-exported for callers building requests.
const (
	SortScore       = types.SortScore
	SortNumComments = types.SortNumComments
	SortCreatedUTC  = types.SortCreatedUTC

	TimeAll   = types.TimeAll
	TimeDay   = types.TimeDay
	TimeWeek  = types.TimeWeek
	TimeMonth = types.TimeMonth
	TimeYear  = types.TimeYear

	SourcePullPush = types.SourcePullPush
	SourceReddit   = types.SourceReddit
)

// Errors re-exported in errors.go
