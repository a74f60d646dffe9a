package reddit

import (
	"errors"

	"github.com/rrajasek95/reddit-data-mcp/reddit/internal/types"
)

// ErrNotFound is returned by GetResult when a cached result set has expired
// or never existed. Callers should treat it as "re-fetch", not as a failure.
var ErrNotFound = types.ErrNotFound

// ValidationError reports a malformed request parameter. It surfaces before
// any backend call is attempted.
type ValidationError = types.ValidationError

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
