package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// errorDecoder extracts a service-specific error from a response body.
// It returns nil when the body carries no error document.
type errorDecoder func(body []byte) error

// requester is the request loop shared by the account and market clients
type requester struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	logger      *slog.Logger
	recorder    RequestRecorder
	breaker     *CircuitBreaker
	decodeError errorDecoder
}

// errRetriesExhausted marks a request that failed on every attempt
var errRetriesExhausted = errors.New("max retries exceeded")

// addJitter adds up to 10% random jitter to a duration
func addJitter(d time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(d)/10 + 1))
	return d + jitter
}

// post sends form as an urlencoded POST to endpoint and returns the body of a
// 2xx response. Every failure is a *shared.TransportError.
func (r *requester) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	if r.breaker == nil {
		return r.send(ctx, endpoint, form)
	}

	if err := r.breaker.Allow(); err != nil {
		r.logger.Warn("request rejected", "endpoint", endpoint, "reason", err)
		return nil, shared.NewTransportError(endpoint, 0, err)
	}

	body, err := r.send(ctx, endpoint, form)
	switch {
	case err == nil || answered(err):
		r.breaker.RecordSuccess()
	case errors.Is(err, errRetriesExhausted):
		r.breaker.RecordFailure()
		if r.breaker.State() == CircuitOpen {
			r.logger.Warn("circuit opened", "endpoint", endpoint, "failures", r.breaker.FailureCount())
		}
	}
	return body, err
}

// answered reports whether err carries a terminal response from the service,
// such as a 4xx status or an API error document
func answered(err error) bool {
	if errors.Is(err, errRetriesExhausted) {
		return false
	}
	var transportErr *shared.TransportError
	return errors.As(err, &transportErr) && transportErr.StatusCode != 0
}

func (r *requester) send(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	target := r.baseURL + endpoint
	encoded := form.Encode()

	maxRetries := r.maxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr *retryableError

	// Attempt the request with exponential backoff + jitter retries
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := addJitter(r.backoffBase * time.Duration(1<<(attempt-1)))
			if lastErr.retryAfter > 0 {
				// Server-provided Retry-After is used without jitter
				delay = lastErr.retryAfter
			}
			r.logger.Warn("retrying request",
				"endpoint", endpoint,
				"attempt", attempt,
				"delay", delay,
				"reason", lastErr.reason)
			r.recordRetry(endpoint, lastErr.reason)
			if err := r.clock.Sleep(ctx, delay); err != nil {
				return nil, shared.NewTransportError(endpoint, 0, fmt.Errorf("context cancelled: %w", err))
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(encoded))
		if err != nil {
			return nil, shared.NewTransportError(endpoint, 0, fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/xml, text/xml")

		started := r.clock.Now()
		resp, err := r.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, shared.NewTransportError(endpoint, 0, fmt.Errorf("context cancelled: %w", ctx.Err()))
			}
			// Network error - retryable
			lastErr = newRetryable(endpoint, 0, "network", fmt.Errorf("network error: %w", err), 0)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		r.recordRequest(endpoint, resp.StatusCode, r.clock.Now().Sub(started))
		r.logger.Debug("api response",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"bytes", len(body),
			"attempt", attempt)

		if readErr != nil {
			lastErr = newRetryable(endpoint, resp.StatusCode, "read", fmt.Errorf("failed to read response: %w", readErr), 0)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			var retryAfter time.Duration
			if v := resp.Header.Get("Retry-After"); v != "" {
				if seconds, err := strconv.Atoi(v); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}
			lastErr = newRetryable(endpoint, resp.StatusCode, "rate_limited", errors.New("rate limited (429)"), retryAfter)
			continue

		case resp.StatusCode >= 500:
			lastErr = newRetryable(endpoint, resp.StatusCode, "server_error",
				fmt.Errorf("server error (%d)", resp.StatusCode), 0)
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			// 4xx and other non-2xx codes are not retried
			return nil, shared.NewTransportError(endpoint, resp.StatusCode, r.describeFailure(body))
		}

		if r.decodeError != nil {
			if apiErr := r.decodeError(body); apiErr != nil {
				return nil, shared.NewTransportError(endpoint, resp.StatusCode, apiErr)
			}
		}

		return body, nil
	}

	return nil, shared.NewTransportError(endpoint, lastErr.StatusCode,
		fmt.Errorf("%w: %w", errRetriesExhausted, lastErr.Err))
}

// describeFailure prefers the service error document over the raw body
func (r *requester) describeFailure(body []byte) error {
	if r.decodeError != nil {
		if apiErr := r.decodeError(body); apiErr != nil {
			return apiErr
		}
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	return fmt.Errorf("API error: %s", snippet)
}

func (r *requester) recordRequest(endpoint string, statusCode int, d time.Duration) {
	if r.recorder != nil {
		r.recorder.RecordAPIRequest(http.MethodPost, endpoint, statusCode, d.Seconds())
	}
}

func (r *requester) recordRetry(endpoint, reason string) {
	if r.recorder != nil {
		r.recorder.RecordAPIRetry(http.MethodPost, endpoint, reason)
	}
}

// retryableError is the last failure of an attempt that may be retried
type retryableError struct {
	*shared.TransportError
	reason     string
	retryAfter time.Duration
}

func newRetryable(endpoint string, statusCode int, reason string, err error, retryAfter time.Duration) *retryableError {
	return &retryableError{
		TransportError: shared.NewTransportError(endpoint, statusCode, err),
		reason:         reason,
		retryAfter:     retryAfter,
	}
}
