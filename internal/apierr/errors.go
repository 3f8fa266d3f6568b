// Package apierr turns non-2xx GitHub responses into typed errors.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/octoglue/octoglue/internal/ratelimit"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// APIError is a GitHub error response.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
	Errors           []FieldError
	RequestID        string
	Method           string
	URL              string
}

// FieldError is one entry of the "errors" array GitHub sends with 422s.
type FieldError struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (e FieldError) String() string {
	if e.Message != "" {
		return e.Message
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Resource, e.Field, e.Code} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		details := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			details[i] = fe.String()
		}
		msg += ": " + strings.Join(details, "; ")
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

// RateLimitError is a primary or secondary rate limit response.
type RateLimitError struct {
	RetryAfter time.Duration
	Info       ratelimit.Info
	// Secondary is set for abuse-detection limits, which reset on their
	// own schedule rather than at Info.Reset.
	Secondary bool
	Err       *APIError
}

func (e *RateLimitError) Error() string {
	kind := "rate limit"
	if e.Secondary {
		kind = "secondary rate limit"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s exceeded, retry after %s", kind, e.RetryAfter)
	}
	if e.Info.Reset != nil {
		return fmt.Sprintf("%s exceeded, resets at %s", kind, e.Info.Reset.Format(time.RFC3339))
	}
	return kind + " exceeded"
}

func (e *RateLimitError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// RetryDelay returns how long to wait before retrying.
func (e *RateLimitError) RetryDelay(now time.Time) time.Duration {
	if e.RetryAfter > 0 {
		return e.RetryAfter
	}
	if !e.Secondary && e.Info.Reset != nil {
		return max(e.Info.Reset.Sub(now), 0)
	}
	return ratelimit.DefaultSecondaryWait
}

// AuthError is a 401 or 403 that is not a rate limit.
type AuthError struct {
	Reason string
	Err    *APIError
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// IsRateLimitError checks if the error is a rate limit error.
func IsRateLimitError(err error) bool {
	var e *RateLimitError
	return errors.As(err, &e)
}

// IsAuthError checks if the error is an authentication error.
func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsNotFoundError checks if the error is a 404.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

var now = time.Now

// FromResponse returns nil for status codes below 400. Otherwise it reads
// and closes the body and returns an *APIError, *RateLimitError or
// *AuthError.
func FromResponse(resp *http.Response) error {
	if resp == nil || resp.StatusCode < 400 {
		return nil
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  strings.TrimSpace(resp.Header.Get("X-GitHub-Request-Id")),
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		if resp.Request.URL != nil {
			apiErr.URL = resp.Request.URL.String()
		}
	}
	decodeEnvelope(body, apiErr)

	t := now()
	info := ratelimit.Parse(resp.Header, t)
	retryAfter, hasRetryAfter := ratelimit.RetryAfter(resp.Header, t)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && info.Exhausted(),
		resp.StatusCode == http.StatusForbidden && hasRetryAfter,
		resp.StatusCode == http.StatusForbidden && isSecondaryMessage(apiErr.Message):
		return &RateLimitError{
			RetryAfter: retryAfter,
			Info:       info,
			Secondary:  !info.Exhausted(),
			Err:        apiErr,
		}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		reason := apiErr.Message
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return &AuthError{Reason: reason, Err: apiErr}
	}
	return apiErr
}

func decodeEnvelope(body []byte, apiErr *APIError) {
	var envelope struct {
		Message          string       `json:"message"`
		DocumentationURL string       `json:"documentation_url"`
		Errors           []FieldError `json:"errors"`
	}
	if len(body) == 0 {
		return
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Not JSON, e.g. an HTML page from a proxy. Keep a short excerpt.
		text := strings.TrimSpace(string(body))
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		apiErr.Message = text
		return
	}
	apiErr.Message = envelope.Message
	apiErr.DocumentationURL = envelope.DocumentationURL
	apiErr.Errors = envelope.Errors
}

func isSecondaryMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "secondary rate limit") || strings.Contains(msg, "abuse detection")
}
