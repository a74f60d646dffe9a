package types

// ------------------------------
// Response Types
// ------------------------------

// SearchResponse wraps one ordered result set.
type SearchResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`

	// ResultID keys the cached, untruncated copy of this result set for
	// follow-up refinement. Empty when caching is disabled.
	ResultID string `json:"resultId,omitempty"`
}
