package httpapi

import (
	"fmt"
	"time"
)

// AuthError indicates the remote service rejected the bearer credential
// (HTTP 401). Distinct from APIError so callers can prompt for a new token
// instead of retrying.
type AuthError struct {
	// Hint tells the user where to obtain a valid credential.
	Hint string
}

func (e *AuthError) Error() string {
	msg := "authentication failed: check your access token"
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// RateLimitError indicates the service throttled the request (HTTP 429).
// The executor never waits on it; the caller decides whether to honor
// RetryAfter or abort.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

// APIError is any other non-2xx response. Detail is the joined list of
// server-reported error messages, or a truncated slice of the raw body when
// the error payload is not structured.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// TimeoutError indicates the request kept failing at the transport level
// (timeout or connection failure) until the retry budget ran out.
type TimeoutError struct {
	Attempts int
	Err      error // Last transport error observed.
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
