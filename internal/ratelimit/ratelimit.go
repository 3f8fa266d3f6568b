// Package ratelimit reads GitHub's rate limit headers and waits out
// exhausted limits.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/octoglue/octoglue/api"
)

// unixTimestampThreshold separates Unix timestamps from relative seconds
// in reset headers. GitHub sends epoch seconds; some proxies send deltas.
const unixTimestampThreshold = 1_000_000_000

// DefaultSecondaryWait is used for secondary rate limits that carry no
// Retry-After header.
const DefaultSecondaryWait = time.Minute

// Info holds the parsed X-RateLimit-* headers of one response.
type Info struct {
	Limit     *int
	Remaining *int
	Used      *int
	Reset     *time.Time
	// Resource is the rate limit bucket, e.g. "core" or "search".
	Resource string
}

// IsZero reports whether the response carried no rate limit headers.
func (i Info) IsZero() bool {
	return i.Limit == nil && i.Remaining == nil && i.Used == nil && i.Reset == nil && i.Resource == ""
}

// Exhausted reports whether the primary limit has no requests left.
func (i Info) Exhausted() bool {
	return i.Remaining != nil && *i.Remaining == 0
}

// Meta returns a JSON-ready map for CLI output.
func (i Info) Meta() map[string]any {
	meta := map[string]any{}
	if i.Limit != nil {
		meta["limit"] = *i.Limit
	}
	if i.Remaining != nil {
		meta["remaining"] = *i.Remaining
	}
	if i.Used != nil {
		meta["used"] = *i.Used
	}
	if i.Reset != nil {
		meta["reset_at"] = i.Reset.UTC().Format(time.RFC3339)
	}
	if i.Resource != "" {
		meta["resource"] = i.Resource
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// Parse reads the rate limit headers from h. Values that do not parse are
// left nil.
func Parse(h http.Header, now time.Time) Info {
	var info Info
	if h == nil {
		return info
	}
	info.Limit = headerInt(h, "X-RateLimit-Limit")
	info.Remaining = headerInt(h, "X-RateLimit-Remaining")
	info.Used = headerInt(h, "X-RateLimit-Used")
	info.Resource = strings.TrimSpace(h.Get("X-RateLimit-Resource"))
	if raw := strings.TrimSpace(h.Get("X-RateLimit-Reset")); raw != "" {
		if t, ok := parseReset(raw, now); ok {
			info.Reset = &t
		}
	}
	return info
}

func headerInt(h http.Header, key string) *int {
	value := strings.TrimSpace(h.Get(key))
	if value == "" {
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &v
}

func parseReset(value string, now time.Time) (time.Time, bool) {
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		switch {
		case secs > unixTimestampThreshold:
			return time.Unix(secs, 0).UTC(), true
		case secs >= 0:
			return now.Add(time.Duration(secs) * time.Second).UTC(), true
		}
		return time.Time{}, false
	}
	if t, err := http.ParseTime(value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// RetryAfter parses a Retry-After header given in seconds or as an HTTP
// date. Negative and past values become zero.
func RetryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	value := strings.TrimSpace(h.Get("Retry-After"))
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return max(time.Duration(secs)*time.Second, 0), true
	}
	if t, err := http.ParseTime(value); err == nil {
		return max(t.Sub(now), 0), true
	}
	return 0, false
}

// Limited is implemented by errors that can say how long to back off.
type Limited interface {
	error
	RetryDelay(now time.Time) time.Duration
}

// TooLongError is returned by Wait when the required delay exceeds the
// allowed maximum.
type TooLongError struct {
	Delay   time.Duration
	MaxWait time.Duration
	Err     error
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%v (reset in %s exceeds max wait %s)", e.Err, e.Delay.Round(time.Second), e.MaxWait)
}

func (e *TooLongError) Unwrap() error { return e.Err }

var now = time.Now

// Wait sleeps through sleep when err is a rate limit error. It reports
// whether it waited, so the caller knows a retry is worthwhile. A maxWait
// of zero or less means no cap.
func Wait(ctx context.Context, sleep api.SleepFunc, err error, maxWait time.Duration) (bool, error) {
	var limited Limited
	if !errors.As(err, &limited) {
		return false, nil
	}
	delay := limited.RetryDelay(now())
	if maxWait > 0 && delay > maxWait {
		return false, &TooLongError{Delay: delay, MaxWait: maxWait, Err: err}
	}
	if sleep == nil {
		sleep = api.ContextSleep
	}
	if err := sleep(ctx, delay); err != nil {
		return false, err
	}
	return true, nil
}
