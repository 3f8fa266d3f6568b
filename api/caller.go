package api

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"time"

	"github.com/octoglue/octoglue/debug"
)

// Backend sends a request descriptor and returns its native response
// type: *http.Response for the synchronous backends, a future for the
// async one.
type Backend[R any] interface {
	Send(ctx context.Context, req *Request) (R, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc[R any] func(ctx context.Context, req *Request) (R, error)

func (f BackendFunc[R]) Send(ctx context.Context, req *Request) (R, error) {
	return f(ctx, req)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the default SleepFunc.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Caller binds a backend and a configuration and exposes one method per
// API operation, grouped by service:
//
//	caller := api.NewCaller(nethttp.New(nil), api.NewConfiguration(
//		api.WithAuthentication(api.StaticToken(token)),
//	))
//	resp, err := caller.Repos().ListForUser(ctx, "octocat", nil)
//
// A Caller never retries, paginates or interprets status codes. Sleep is
// provided for callers that implement their own rate-limit handling.
type Caller[R any] struct {
	backend Backend[R]
	config  *Configuration
	sleep   SleepFunc
}

// CallerOption configures a Caller.
type CallerOption func(*callerOptions)

type callerOptions struct {
	sleep SleepFunc
}

// WithSleep replaces the delay function returned by Caller.Sleep.
func WithSleep(fn SleepFunc) CallerOption {
	return func(o *callerOptions) { o.sleep = fn }
}

// NewCaller returns a Caller. A nil cfg means NewConfiguration().
func NewCaller[R any](backend Backend[R], cfg *Configuration, opts ...CallerOption) *Caller[R] {
	if cfg == nil {
		cfg = NewConfiguration()
	}
	o := callerOptions{sleep: ContextSleep}
	for _, opt := range opts {
		opt(&o)
	}
	return &Caller[R]{backend: backend, config: cfg, sleep: o.sleep}
}

// Configuration returns the configuration the Caller was built with.
func (c *Caller[R]) Configuration() *Configuration { return c.config }

// Sleep waits using the configured delay function.
func (c *Caller[R]) Sleep(ctx context.Context, d time.Duration) error {
	return c.sleep(ctx, d)
}

// Send adds default headers and credentials to a copy of req and hands it
// to the backend.
func (c *Caller[R]) Send(ctx context.Context, req *Request) (R, error) {
	var zero R
	req = req.Clone()

	for name, values := range c.config.Header {
		if req.Header.Get(name) != "" {
			continue
		}
		for _, v := range values {
			if err := req.AddHeader(name, v); err != nil {
				return zero, err
			}
		}
	}

	if auth := c.config.Authentication; auth != nil {
		if err := auth.Apply(ctx, req); err != nil {
			return zero, wrapKind(err, KindCredential, req.Operation)
		}
	}

	if debug.IsEnabled(ctx) {
		slog.DebugContext(ctx, "github request",
			"operation", req.Operation,
			"method", req.Method,
			"url", req.URL,
			debug.Headers(req.Header),
			"body_bytes", len(req.Body),
		)
	}

	resp, err := c.backend.Send(ctx, req)
	if err != nil {
		return zero, wrapKind(err, KindTransport, req.Operation)
	}
	return resp, nil
}

// do sends a request produced by an endpoint builder.
func (c *Caller[R]) do(ctx context.Context, req *Request, err error) (R, error) {
	if err != nil {
		var zero R
		return zero, err
	}
	return c.Send(ctx, req)
}

// jsonBody serializes a typed body for operation op. A nil body sends no
// content at all.
func (c *Caller[R]) jsonBody(op string, body any) (*Content, error) {
	if body == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(body); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	content, err := JSONContent(body)
	if err != nil {
		return nil, WithOp(err, op)
	}
	return content, nil
}

// wrapKind keeps *Error values as they are and wraps anything else.
func wrapKind(err error, kind ErrorKind, op string) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return WithOp(err, op)
	}
	return newError(kind, op, err)
}
