package apierr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/octoglue/octoglue/api"
)

func response(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	u, _ := url.Parse("https://api.github.com/repos/o/r")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
}

func TestFromResponseSuccess(t *testing.T) {
	if err := FromResponse(response(200, "{}", nil)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := FromResponse(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestFromResponseEnvelope(t *testing.T) {
	h := http.Header{}
	h.Set("X-GitHub-Request-Id", "ABCD:1234")
	err := FromResponse(response(404, `{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`, h))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "Not Found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.DocumentationURL != "https://docs.github.com/rest" {
		t.Errorf("DocumentationURL = %q", apiErr.DocumentationURL)
	}
	if apiErr.RequestID != "ABCD:1234" {
		t.Errorf("RequestID = %q", apiErr.RequestID)
	}
	if apiErr.Method != "GET" || apiErr.URL != "https://api.github.com/repos/o/r" {
		t.Errorf("request = %s %s", apiErr.Method, apiErr.URL)
	}
	if !IsNotFoundError(err) {
		t.Error("expected IsNotFoundError")
	}
	if err.Error() != "API error (status 404): Not Found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFromResponseValidationErrors(t *testing.T) {
	body := `{"message":"Validation Failed","errors":[{"resource":"Issue","field":"title","code":"missing_field"},{"message":"label does not exist"}]}`
	err := FromResponse(response(422, body, nil))
	want := "API error (status 422): Validation Failed: Issue title missing_field; label does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFromResponseNonJSON(t *testing.T) {
	err := FromResponse(response(502, "<html>Bad Gateway</html>", nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "<html>Bad Gateway</html>" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestFromResponseAuth(t *testing.T) {
	err := FromResponse(response(401, `{"message":"Bad credentials"}`, nil))
	if !IsAuthError(err) {
		t.Fatalf("expected AuthError, got %T", err)
	}
	if err.Error() != "authentication error: Bad credentials" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = FromResponse(response(403, `{"message":"Resource not accessible by integration"}`, nil))
	if !IsAuthError(err) {
		t.Fatalf("expected AuthError for 403, got %T", err)
	}
	if se := StructuredErrorFromError(err); se.Code != ErrForbidden {
		t.Errorf("code = %s, want forbidden", se.Code)
	}
}

func TestFromResponsePrimaryRateLimit(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	h := http.Header{}
	h.Set("X-RateLimit-Remaining", "0")
	h.Set("X-RateLimit-Limit", "60")
	h.Set("X-RateLimit-Reset", fmt.Sprint(fixed.Add(90*time.Second).Unix()))

	err := FromResponse(response(403, `{"message":"API rate limit exceeded for 1.2.3.4."}`, h))
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rl.Secondary {
		t.Error("expected primary limit")
	}
	if d := rl.RetryDelay(fixed); d != 90*time.Second {
		t.Errorf("RetryDelay = %v", d)
	}
	if !errors.As(err, new(*APIError)) {
		t.Error("expected RateLimitError to unwrap to APIError")
	}
}

func TestFromResponseSecondaryRateLimit(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		body   string
		want   time.Duration
	}{
		{"retry-after", 403, http.Header{"Retry-After": []string{"30"}}, `{"message":"slow down"}`, 30 * time.Second},
		{"message only", 403, nil, `{"message":"You have exceeded a secondary rate limit."}`, time.Minute},
		{"429", 429, nil, `{}`, time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(response(tt.status, tt.body, tt.header))
			var rl *RateLimitError
			if !errors.As(err, &rl) {
				t.Fatalf("expected RateLimitError, got %T", err)
			}
			if !rl.Secondary {
				t.Error("expected secondary limit")
			}
			if d := rl.RetryDelay(time.Now()); d != tt.want {
				t.Errorf("RetryDelay = %v, want %v", d, tt.want)
			}
		})
	}
}

func TestStructuredErrorFromError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      ErrorCode
		retryable bool
	}{
		{"api 404", &APIError{StatusCode: 404}, ErrNotFound, false},
		{"api 500", &APIError{StatusCode: 503}, ErrServerError, true},
		{"rate limit", &RateLimitError{RetryAfter: time.Second}, ErrRateLimited, true},
		{"auth", &AuthError{Reason: "bad"}, ErrUnauthorized, false},
		{"timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrTimeout, true},
		{"transport", &api.Error{Kind: api.KindTransport, Err: errors.New("refused")}, ErrNetwork, true},
		{"other", errors.New("boom"), ErrUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := StructuredErrorFromError(tt.err)
			if se.Code != tt.code {
				t.Errorf("code = %s, want %s", se.Code, tt.code)
			}
			if se.Retryable != tt.retryable || IsRetryable(tt.err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", se.Retryable, tt.retryable)
			}
		})
	}
	if StructuredErrorFromError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestNewValidationError(t *testing.T) {
	se := NewValidationError("backend", "grpc", []string{"nethttp", "retryable", "async"})
	if se.Code != ErrValidation {
		t.Errorf("code = %s", se.Code)
	}
	if !strings.Contains(se.Message, `"grpc"`) || len(se.AllowedValues) != 3 {
		t.Errorf("unexpected error: %+v", se)
	}
}
