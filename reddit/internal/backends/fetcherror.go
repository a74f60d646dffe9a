// Package backends wraps the external archive and live APIs behind one
// Backend interface and classifies their failures for the retry and
// fallback policies layered above.
package backends

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure. The orchestrator's fallback logic and the
// per-call retry policy both branch on it.
type Kind int

const (
	// KindNetwork covers connection failures, timeouts, and 5xx responses.
	// Retryable.
	KindNetwork Kind = iota

	// KindRateLimited is an HTTP 429 from the backend. Retryable after backoff.
	KindRateLimited

	// KindMalformed means the response body did not parse into the expected
	// shape. Not retryable; the backend is answering, just not usefully.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate-limited"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// FetchError wraps a backend failure with classification metadata.
// A zero-post response is not a FetchError; adapters return (nil, nil) for
// "no results" so callers can tell emptiness from failure.
type FetchError struct {
	Backend    string
	Kind       Kind
	StatusCode int // 0 for non-HTTP failures
	Underlying error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: [%s] HTTP %d: %v", e.Backend, e.Kind, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("%s: [%s] %v", e.Backend, e.Kind, e.Underlying)
}

func (e *FetchError) Unwrap() error { return e.Underlying }

// Retryable reports whether the failure may be transient.
func (e *FetchError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindRateLimited
}

// classifyStatus maps a non-2xx HTTP status onto a FetchError.
func classifyStatus(backend string, status int, op string) *FetchError {
	kind := KindMalformed
	switch {
	case status == 429:
		kind = KindRateLimited
	case status >= 500:
		kind = KindNetwork
	}
	return &FetchError{
		Backend:    backend,
		Kind:       kind,
		StatusCode: status,
		Underlying: fmt.Errorf("%s: unexpected status", op),
	}
}

func networkError(backend, op string, err error) *FetchError {
	return &FetchError{
		Backend:    backend,
		Kind:       KindNetwork,
		Underlying: fmt.Errorf("%s: %w", op, err),
	}
}

func malformedError(backend, op string, err error) *FetchError {
	return &FetchError{
		Backend:    backend,
		Kind:       KindMalformed,
		Underlying: fmt.Errorf("%s: %w", op, err),
	}
}

// IsRetryable reports whether err is a retryable FetchError.
func IsRetryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}
