// Package async wraps a synchronous backend so that sending returns a
// Future immediately and the request runs in its own goroutine.
package async

import (
	"context"
	"errors"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/api/nethttp"
	"github.com/octoglue/octoglue/api/retryable"
)

// Future is the pending result of a request.
type Future[R any] struct {
	done chan struct{}
	resp R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

func (f *Future[R]) complete(resp R, err error) {
	f.resp = resp
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx is done. Giving up on
// ctx does not cancel the request itself; cancel the context passed to
// Send for that.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Backend runs Inner.Send in a goroutine per request.
type Backend[R any] struct {
	Inner api.Backend[R]
}

// New wraps inner.
func New[R any](inner api.Backend[R]) *Backend[R] {
	return &Backend[R]{Inner: inner}
}

// Send starts the request and returns its future. It never fails itself;
// every error is reported through Wait.
func (b *Backend[R]) Send(ctx context.Context, req *api.Request) (*Future[R], error) {
	f := newFuture[R]()
	go func() {
		resp, err := b.Inner.Send(ctx, req)
		if err != nil {
			var apiErr *api.Error
			if !errors.As(err, &apiErr) {
				err = &api.Error{Kind: api.KindTransport, Op: req.Operation, Err: err}
			}
		}
		f.complete(resp, err)
	}()
	return f, nil
}

// NewCaller returns a Caller whose operations return futures of
// net/http responses. A nil client uses the nethttp default.
func NewCaller(client *http.Client, cfg *api.Configuration, opts ...api.CallerOption) *api.Caller[*Future[*http.Response]] {
	return api.NewCaller[*Future[*http.Response]](New[*http.Response](nethttp.New(client)), cfg, opts...)
}

// NewRetryableCaller is NewCaller over a go-retryablehttp client.
func NewRetryableCaller(client *retryablehttp.Client, cfg *api.Configuration, opts ...api.CallerOption) *api.Caller[*Future[*http.Response]] {
	return api.NewCaller[*Future[*http.Response]](New[*http.Response](retryable.New(client)), cfg, opts...)
}
