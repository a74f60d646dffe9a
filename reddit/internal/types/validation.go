package types

import (
	"errors"
	"fmt"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when a cached result set has expired or never existed.
var ErrNotFound = errors.New("result set not found")

// ValidationError reports a malformed request parameter. It surfaces to the
// caller immediately; no backend call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ------------------------------
// Request Validation
// ------------------------------

const (
	// DefaultLimit is applied when the caller leaves Limit unset.
	DefaultLimit = 10

	// MaxLimit is the hard upper bound on posts per request, matching the
	// backends' maximum page size.
	MaxLimit = 100
)

// Normalize validates enum fields and clamps numeric ones in place.
// Out-of-range enum values are rejected, never coerced; numeric bounds clamp.
func (r *SearchRequest) Normalize() error {
	switch r.Sort {
	case "":
		r.Sort = SortScore
	case SortScore, SortNumComments, SortCreatedUTC:
	default:
		return &ValidationError{Field: "sort", Reason: fmt.Sprintf("unknown value %q", r.Sort)}
	}

	switch r.TimeFilter {
	case "":
		r.TimeFilter = TimeAll
	case TimeAll, TimeDay, TimeWeek, TimeMonth, TimeYear:
	default:
		return &ValidationError{Field: "time_filter", Reason: fmt.Sprintf("unknown value %q", r.TimeFilter)}
	}

	if r.Limit == 0 {
		r.Limit = DefaultLimit
	} else if r.Limit < 1 {
		r.Limit = 1
	} else if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}

	if r.CommentsPerPost < 0 {
		r.CommentsPerPost = 0
	}
	if r.MaxText < 0 {
		r.MaxText = 0
	}
	return nil
}
