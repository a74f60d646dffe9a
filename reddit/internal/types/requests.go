package types

// ------------------------------
// Request Types
// ------------------------------

// Sort orders results by a post field.
type Sort string

const (
	SortScore       Sort = "score"
	SortNumComments Sort = "num_comments"
	SortCreatedUTC  Sort = "created_utc"
)

// TimeFilter restricts results to a trailing window.
type TimeFilter string

const (
	TimeAll   TimeFilter = "all"
	TimeDay   TimeFilter = "day"
	TimeWeek  TimeFilter = "week"
	TimeMonth TimeFilter = "month"
	TimeYear  TimeFilter = "year"
)

// SearchRequest holds search parameters. An empty Query means "browse": list
// posts without a text filter, typically scoped to a subreddit.
type SearchRequest struct {
	Query           string     `json:"query"`
	Subreddit       string     `json:"subreddit,omitempty"`
	Sort            Sort       `json:"sort,omitempty"`
	TimeFilter      TimeFilter `json:"timeFilter,omitempty"`
	Limit           int        `json:"limit,omitempty"`
	IncludeComments bool       `json:"includeComments,omitempty"`
	CommentsPerPost int        `json:"commentsPerPost,omitempty"`
	MaxText         int        `json:"maxText,omitempty"`
}
