// Package httpapi implements the authenticated request executor shared by
// the REST clients in this repository: one logical call with bearer auth,
// uniform error translation, and bounded retry with backoff for transient
// transport failures.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gregjones/httpcache"
)

const (
	requestTimeout    = 30 * time.Second
	maxRetries        = 3 // Retries after the first attempt; at most 4 attempts total.
	defaultRetryAfter = 60 * time.Second
	maxErrorDetail    = 200

	initialRetryInterval = 250 * time.Millisecond
	maxRetryInterval     = 5 * time.Second
)

// Options configures an Executor. BaseURL is required. Token is optional;
// when empty no Authorization header is sent (the local tool-registry
// server is tokenless). AuthHint is service-specific remediation text
// attached to 401 errors. HTTPClient and NewBackOff exist for tests.
type Options struct {
	BaseURL    string
	Token      string
	AuthHint   string
	HTTPClient *http.Client
	NewBackOff func() backoff.BackOff
	Logger     *slog.Logger
}

// Executor performs authenticated JSON requests against one service.
// It holds no per-request state; a single Executor is reused for the
// client's lifetime so the underlying transport can keep connections open.
type Executor struct {
	baseURL    string
	token      string
	authHint   string
	client     *http.Client
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// NewExecutor creates an Executor with the default transport stack:
// an in-memory ETag cache (conditional requests still revalidate against
// the server, so every read remains a live remote call) under a client
// with a fixed per-request timeout.
func NewExecutor(opts Options) *Executor {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   requestTimeout,
		}
	}

	newBO := opts.NewBackOff
	if newBO == nil {
		newBO = defaultBackOff
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		authHint:   opts.AuthHint,
		client:     client,
		newBackOff: newBO,
		logger:     logger,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialRetryInterval
	b.MaxInterval = maxRetryInterval
	return b
}

// Do performs one logical request and returns the raw JSON response body.
// Transient transport failures (timeout, connection error) are retried with
// capped exponential backoff up to maxRetries; HTTP-level errors are
// translated into the package's error types and surfaced immediately.
func (e *Executor) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	var result json.RawMessage
	var lastErr error
	attempts := 0

	operation := func() error {
		attempts++
		res, err := e.attempt(ctx, method, path, query, payload)
		if err != nil {
			lastErr = err
			if isTransient(err) {
				e.logger.Debug("transient request failure, will retry",
					"method", method,
					"path", path,
					"attempt", attempts,
					"error", err,
				)
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(e.newBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		if isTransient(err) {
			return nil, &TimeoutError{Attempts: attempts, Err: lastErr}
		}
		return nil, err
	}
	return result, nil
}

// attempt performs a single HTTP round trip and translates the response.
func (e *Executor) attempt(ctx context.Context, method, path string, query url.Values, payload []byte) (json.RawMessage, error) {
	u := e.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: retryAfter(resp)}
	case http.StatusUnauthorized:
		return nil, &AuthError{Hint: e.authHint}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// isTransient reports whether an error is a transport-level failure worth
// retrying. The executor's own error types are always permanent.
func isTransient(err error) bool {
	var apiErr *APIError
	var authErr *AuthError
	var rlErr *RateLimitError
	if errors.As(err, &apiErr) || errors.As(err, &authErr) || errors.As(err, &rlErr) {
		return false
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// retryAfter parses the Retry-After header as a whole number of seconds,
// falling back to the documented default when absent or malformed.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// errorDetail extracts a human-readable detail string from an error body.
// Structured bodies look like {"errors": [{"message": "..."}, ...]}; the
// messages are joined. Anything else is truncated raw text.
func errorDetail(raw []byte) string {
	var parsed struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	detail := string(raw)
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail]
	}
	return detail
}
