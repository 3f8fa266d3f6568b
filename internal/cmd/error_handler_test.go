package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/apierr"
	"github.com/octoglue/octoglue/internal/ratelimit"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantContains []string
	}{
		{
			name:         "nil error",
			err:          nil,
			wantContains: []string{},
		},
		{
			name: "primary rate limit",
			err:  &apierr.RateLimitError{RetryAfter: 5 * time.Second},
			wantContains: []string{
				"Rate limit exceeded",
				"Wait for the reset",
			},
		},
		{
			name: "secondary rate limit",
			err:  &apierr.RateLimitError{Secondary: true},
			wantContains: []string{
				"Secondary rate limit exceeded",
				"lower --concurrency",
			},
		},
		{
			name: "wait longer than max-wait",
			err:  &ratelimit.TooLongError{Delay: 30 * time.Minute, MaxWait: 15 * time.Minute},
			wantContains: []string{
				"Rate limited for 30m0s",
				"--max-wait 0",
			},
		},
		{
			name: "auth error",
			err:  &apierr.AuthError{Reason: "Bad credentials"},
			wantContains: []string{
				"Authentication failed: Bad credentials",
				"octoglue auth login",
			},
		},
		{
			name: "404 API error",
			err:  &apierr.APIError{StatusCode: 404, Message: "Not Found"},
			wantContains: []string{
				"API error (HTTP 404): Not Found",
				"doesn't exist",
			},
		},
		{
			name: "422 with field errors",
			err: &apierr.APIError{
				StatusCode: 422,
				Message:    "Validation Failed",
				Errors:     []apierr.FieldError{{Resource: "Issue", Field: "title", Code: "missing_field"}},
			},
			wantContains: []string{
				"API error (HTTP 422)",
				"Issue title missing_field",
				"Validation failed",
			},
		},
		{
			name: "500 API error",
			err:  &apierr.APIError{StatusCode: 500},
			wantContains: []string{
				"API error (HTTP 500)",
				"Server error",
			},
		},
		{
			name: "API error with request ID and docs",
			err:  &apierr.APIError{StatusCode: 400, Message: "Problems parsing JSON", RequestID: "ABCD:1234", DocumentationURL: "https://docs.github.com/rest"},
			wantContains: []string{
				"API error (HTTP 400)",
				"Request ID: ABCD:1234",
				"Documentation: https://docs.github.com/rest",
			},
		},
		{
			name: "config error",
			err:  &configError{err: errors.New("unknown auth kind \"x\"")},
			wantContains: []string{
				"Configuration error",
				"GITHUB_TOKEN",
			},
		},
		{
			name: "connection refused",
			err:  &api.Error{Kind: api.KindTransport, Op: "rate-limit/get", Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")},
			wantContains: []string{
				"Connection refused",
				"octoglue auth status",
			},
		},
		{
			name: "DNS error",
			err:  errors.New("lookup ghe.invalid: no such host"),
			wantContains: []string{
				"DNS resolution failed",
				"spelling",
			},
		},
		{
			name: "certificate error",
			err:  errors.New("x509: certificate signed by unknown authority"),
			wantContains: []string{
				"TLS certificate error",
				"private CA",
			},
		},
		{
			name: "generic error",
			err:  errors.New("something went wrong"),
			wantContains: []string{
				"Error:",
				"something went wrong",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HandleError(tt.err)

			if tt.err == nil {
				if result != "" {
					t.Errorf("expected empty string for nil error, got %q", result)
				}
				return
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(result, want) {
					t.Errorf("HandleError() result missing %q\nGot: %s", want, result)
				}
			}
		})
	}
}

func TestHandleError_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("list repositories of octocat: %w", &apierr.APIError{StatusCode: 404, Message: "Not Found"})
	result := HandleError(err)
	if !strings.Contains(result, "API error (HTTP 404)") {
		t.Errorf("wrapped API error not unwrapped: %s", result)
	}
}

func TestSuggestionsForStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{400, "Check your request parameters"},
		{404, "doesn't exist"},
		{409, "changed"},
		{410, "gone"},
		{422, "Validation failed"},
		{503, "--backend retryable"},
		{418, "--debug"},
	}
	for _, tt := range tests {
		if got := suggestionsForStatusCode(tt.code); !strings.Contains(got, tt.want) {
			t.Errorf("suggestionsForStatusCode(%d) missing %q: %s", tt.code, tt.want, got)
		}
	}
}
