// Package retryable sends api requests through go-retryablehttp. The
// retry policy is whatever the supplied client is configured with; the
// client built by New does not retry.
package retryable

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/octoglue/octoglue/api"
)

type Backend struct {
	Client *retryablehttp.Client
}

var _ api.Backend[*http.Response] = (*Backend)(nil)

// New returns a Backend around client. A nil client gets a pooled
// cleanhttp transport, RetryMax 0, the passthrough error handler and the
// default slog logger.
func New(client *retryablehttp.Client) *Backend {
	if client == nil {
		client = NewClient(0)
	}
	return &Backend{Client: client}
}

// NewClient returns a retryablehttp client with the given retry budget.
// Only GET, HEAD and OPTIONS requests are retried; see SafeMethodRetryPolicy.
// Exhausted retries hand back the last response instead of an error, so
// callers still see GitHub's status and rate-limit headers.
func NewClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = cleanhttp.DefaultPooledClient()
	client.RetryMax = retryMax
	client.CheckRetry = SafeMethodRetryPolicy
	client.Backoff = retryablehttp.DefaultBackoff
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = slog.Default()
	return client
}

type methodKey struct{}

// SafeMethodRetryPolicy applies retryablehttp.DefaultRetryPolicy to GET,
// HEAD and OPTIONS requests and sends every other method exactly once.
// Transport errors carry no response, so the method is read from the
// context set by NewRequest.
func SafeMethodRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	method, _ := ctx.Value(methodKey{}).(string)
	if resp != nil && resp.Request != nil {
		method = resp.Request.Method
	}
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	default:
		return false, nil
	}
}

// NewCaller is shorthand for api.NewCaller(New(client), cfg, opts...).
func NewCaller(client *retryablehttp.Client, cfg *api.Configuration, opts ...api.CallerOption) *api.Caller[*http.Response] {
	return api.NewCaller[*http.Response](New(client), cfg, opts...)
}

// NewRequest translates a descriptor into a rewindable request bound to ctx.
func NewRequest(ctx context.Context, req *api.Request) (*retryablehttp.Request, error) {
	if _, err := url.Parse(req.URL); err != nil {
		return nil, &api.Error{Kind: api.KindURLParse, Op: req.Operation, Err: err}
	}

	var body any
	if req.Body != nil {
		body = req.Body
	}
	ctx = context.WithValue(ctx, methodKey{}, req.Method)
	rreq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &api.Error{Kind: api.KindURLParse, Op: req.Operation, Err: err}
	}
	rreq.Header = req.Header.Clone()
	return rreq, nil
}

func (b *Backend) Send(ctx context.Context, req *api.Request) (*http.Response, error) {
	rreq, err := NewRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	return b.Client.Do(rreq)
}
