package backends

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   Kind
	}{
		{429, KindRateLimited},
		{500, KindNetwork},
		{502, KindNetwork},
		{404, KindMalformed},
		{403, KindMalformed},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d", tc.status), func(t *testing.T) {
			fe := classifyStatus("pullpush", tc.status, "fetch_posts")
			if fe.Kind != tc.want {
				t.Errorf("Kind = %v, want %v", fe.Kind, tc.want)
			}
			if fe.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tc.status)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if !(&FetchError{Kind: KindNetwork}).Retryable() {
		t.Error("network errors are retryable")
	}
	if !(&FetchError{Kind: KindRateLimited}).Retryable() {
		t.Error("rate-limited errors are retryable")
	}
	if (&FetchError{Kind: KindMalformed}).Retryable() {
		t.Error("malformed responses are not retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestFetchErrorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	fe := networkError("reddit", "fetch_posts", inner)
	if !errors.Is(fe, inner) {
		t.Error("FetchError must unwrap to the underlying error")
	}
}
