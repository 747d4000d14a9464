package capratio

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the whole comparison pipeline. Callers match them with
// errors.Is; the concrete error values carry the offending token or asset in
// their message.
var (
	// ErrEmptyToken reports a blank asset token.
	ErrEmptyToken = errors.New("empty asset token")
	// ErrInvalidToken reports a token containing disallowed characters.
	ErrInvalidToken = errors.New("invalid asset token")

	// ErrNotFound reports that a provider does not know the identifier.
	ErrNotFound = errors.New("asset not found")
	// ErrRateLimited reports that retries were exhausted under rate limiting.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable reports a persistent transport or provider failure.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrAuthMissing reports that a required API key is absent or rejected.
	ErrAuthMissing = errors.New("missing provider credentials")

	// ErrInsufficientInput reports fewer than two valuations to compare.
	ErrInsufficientInput = errors.New("at least two assets are required")

	// ErrEstimateConsumed reports an attempt to override the gold estimate
	// after it was already overridden or read.
	ErrEstimateConsumed = errors.New("gold estimate already consumed")
)

// StatusError reports an HTTP-level provider failure with enough context for
// the Gateway's retry policy: the status decides whether a retry is worth it,
// and RetryAfter carries the provider-supplied delay on rate limiting.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Provider, e.StatusCode, e.Message)
}

// Transient reports whether the failure is worth retrying.
func (e *StatusError) Transient() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// RateLimited reports whether the provider signalled rate limiting.
func (e *StatusError) RateLimited() bool { return e.StatusCode == 429 }
