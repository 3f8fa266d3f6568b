// Package pager drives page-numbered and Link-header pagination with
// retries for transient and rate-limited failures.
package pager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/apierr"
	"github.com/octoglue/octoglue/internal/ratelimit"
)

const (
	DefaultPerPage    = 100
	DefaultMaxRetries = 3
)

// FetchFunc returns one page. Page numbers start at 1.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, error)

// Pager holds the retry policy shared by every page of a listing.
type Pager struct {
	// Sleep waits between attempts. Nil means api.ContextSleep.
	Sleep api.SleepFunc
	// MaxWait caps a single rate limit wait. Zero means no cap.
	MaxWait time.Duration
	// MaxRetries bounds retries per page, rate limit waits included.
	MaxRetries uint64
	// NewBackOff builds the delay schedule for server errors. Nil means an
	// exponential backoff starting at 500ms.
	NewBackOff func() backoff.BackOff
	// TransportRetries is set when the backend already retries server
	// errors. Retry then only waits out rate limits.
	TransportRetries bool
}

// New returns a Pager that sleeps through sleep.
func New(sleep api.SleepFunc, maxWait time.Duration) *Pager {
	return &Pager{Sleep: sleep, MaxWait: maxWait, MaxRetries: DefaultMaxRetries}
}

func (p *Pager) sleep() api.SleepFunc {
	if p == nil || p.Sleep == nil {
		return api.ContextSleep
	}
	return p.Sleep
}

func (p *Pager) backOff() backoff.BackOff {
	var b backoff.BackOff
	if p != nil && p.NewBackOff != nil {
		b = p.NewBackOff()
	} else {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 500 * time.Millisecond
		exp.MaxElapsedTime = 0
		b = exp
	}
	retries := uint64(DefaultMaxRetries)
	if p != nil {
		retries = p.MaxRetries
	}
	return backoff.WithMaxRetries(b, retries)
}

// Retry calls op until it succeeds, fails permanently or the retry budget
// is spent. Rate limit errors wait for the reset; other retryable errors
// wait for the next backoff interval.
func (p *Pager) Retry(ctx context.Context, op func(context.Context) error) error {
	b := backoff.WithContext(p.backOff(), ctx)
	b.Reset()
	sleep := p.sleep()
	var maxWait time.Duration
	if p != nil {
		maxWait = p.MaxWait
	}

	for {
		err := op(ctx)
		if err == nil {
			return nil
		}
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		if !apierr.IsRetryable(err) {
			return err
		}
		if p != nil && p.TransportRetries && !apierr.IsRateLimitError(err) {
			return err
		}

		next := b.NextBackOff()
		if next == backoff.Stop {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if apierr.IsRateLimitError(err) {
			slog.InfoContext(ctx, "rate limited, waiting", "error", err)
			waited, waitErr := ratelimit.Wait(ctx, sleep, err, maxWait)
			if waitErr != nil {
				return waitErr
			}
			if waited {
				continue
			}
		}

		slog.InfoContext(ctx, "request failed, retrying", "delay", next, "error", err)
		if err := sleep(ctx, next); err != nil {
			return err
		}
	}
}

// Page fetches a single page through Retry.
func Page[T any](ctx context.Context, p *Pager, page int, fetch FetchFunc[T]) ([]T, error) {
	var items []T
	err := p.Retry(ctx, func(ctx context.Context) error {
		var err error
		items, err = fetch(ctx, page)
		return err
	})
	return items, err
}

// Each fetches pages from 1 until an empty page and hands every non-empty
// page to fn.
func Each[T any](ctx context.Context, p *Pager, fetch FetchFunc[T], fn func([]T) error) error {
	for page := 1; ; page++ {
		items, err := Page(ctx, p, page, fetch)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		if err := fn(items); err != nil {
			return err
		}
	}
}

// All collects every page.
func All[T any](ctx context.Context, p *Pager, fetch FetchFunc[T]) ([]T, error) {
	var all []T
	err := Each(ctx, p, fetch, func(items []T) error {
		all = append(all, items...)
		return nil
	})
	return all, err
}

// NextLink returns the rel="next" URL of a Link header, or "".
func NextLink(h http.Header) string {
	for _, value := range h.Values("Link") {
		for _, part := range strings.Split(value, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 {
				continue
			}
			target := strings.TrimSpace(segments[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range segments[1:] {
				param = strings.TrimSpace(param)
				if param == `rel="next"` || param == "rel=next" {
					return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
				}
			}
		}
	}
	return ""
}
