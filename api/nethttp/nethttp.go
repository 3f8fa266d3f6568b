// Package nethttp sends api requests with a net/http client.
package nethttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/octoglue/octoglue/api"
)

// Backend is a synchronous api.Backend.
type Backend struct {
	Client *http.Client
}

var _ api.Backend[*http.Response] = (*Backend)(nil)

// New returns a Backend using client, or a pooled cleanhttp client when
// client is nil.
func New(client *http.Client) *Backend {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &Backend{Client: client}
}

// NewCaller is shorthand for api.NewCaller(New(client), cfg, opts...).
func NewCaller(client *http.Client, cfg *api.Configuration, opts ...api.CallerOption) *api.Caller[*http.Response] {
	return api.NewCaller[*http.Response](New(client), cfg, opts...)
}

// NewRequest translates a descriptor into an *http.Request bound to ctx.
func NewRequest(ctx context.Context, req *api.Request) (*http.Request, error) {
	if _, err := url.Parse(req.URL); err != nil {
		return nil, &api.Error{Kind: api.KindURLParse, Op: req.Operation, Err: err}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &api.Error{Kind: api.KindURLParse, Op: req.Operation, Err: err}
	}
	httpReq.Header = req.Header.Clone()
	return httpReq, nil
}

// Send performs the request. The caller owns the response body.
func (b *Backend) Send(ctx context.Context, req *api.Request) (*http.Response, error) {
	httpReq, err := NewRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	return b.Client.Do(httpReq)
}
