package retryable

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoglue/octoglue/api"
)

func TestDefaultClientDoesNotRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	caller := NewCaller(nil, api.NewConfiguration(api.WithBaseURL(server.URL)))
	resp, err := caller.RateLimit().Get(context.Background())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func fastClient(retryMax int) *retryablehttp.Client {
	client := NewClient(retryMax)
	client.RetryWaitMin = time.Millisecond
	client.RetryWaitMax = 5 * time.Millisecond
	return client
}

func TestConfiguredRetriesReads(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	caller := NewCaller(fastClient(3), api.NewConfiguration(api.WithBaseURL(server.URL)))
	resp, err := caller.RateLimit().Get(context.Background())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestConfiguredClientSendsWritesOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	caller := NewCaller(fastClient(3), api.NewConfiguration(api.WithBaseURL(server.URL)))
	resp, err := caller.Markdown().Render(context.Background(), &api.MarkdownRenderBody{Text: "hi"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConfiguredClientSendsWritesOnceOnTransportError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}))
	defer server.Close()

	caller := NewCaller(fastClient(3), api.NewConfiguration(api.WithBaseURL(server.URL)))
	_, err := caller.Markdown().Render(context.Background(), &api.MarkdownRenderBody{Text: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSafeMethodRetryPolicy(t *testing.T) {
	transportErr := errors.New("connection reset")
	tests := []struct {
		name   string
		method string
		resp   *http.Response
		err    error
		want   bool
	}{
		{name: "GET 502", method: http.MethodGet, resp: &http.Response{StatusCode: http.StatusBadGateway}, want: true},
		{name: "GET transport error", method: http.MethodGet, err: transportErr, want: true},
		{name: "HEAD 503", method: http.MethodHead, resp: &http.Response{StatusCode: http.StatusServiceUnavailable}, want: true},
		{name: "GET 404", method: http.MethodGet, resp: &http.Response{StatusCode: http.StatusNotFound}, want: false},
		{name: "POST 502", method: http.MethodPost, resp: &http.Response{StatusCode: http.StatusBadGateway}, want: false},
		{name: "POST transport error", method: http.MethodPost, err: transportErr, want: false},
		{name: "PATCH 429", method: http.MethodPatch, resp: &http.Response{StatusCode: http.StatusTooManyRequests}, want: false},
		{name: "DELETE transport error", method: http.MethodDelete, err: transportErr, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.WithValue(context.Background(), methodKey{}, tt.method)
			if tt.resp != nil {
				tt.resp.Request = &http.Request{Method: tt.method}
			}
			got, err := SafeMethodRetryPolicy(ctx, tt.resp, tt.err)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRequestCopiesHeaders(t *testing.T) {
	req, err := api.NewRateLimitGetRequest("https://example.com", "ua", "application/json")
	require.NoError(t, err)

	rreq, err := NewRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ua", rreq.Header.Get("User-Agent"))
	assert.Equal(t, "https://example.com/rate_limit", rreq.URL.String())
}
