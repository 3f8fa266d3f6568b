package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := http.Header{}
	h.Set("X-RateLimit-Limit", "5000")
	h.Set("X-RateLimit-Remaining", "4999")
	h.Set("X-RateLimit-Used", "1")
	h.Set("X-RateLimit-Reset", "1704070800")
	h.Set("X-RateLimit-Resource", "core")

	info := Parse(h, now)
	if info.Limit == nil || *info.Limit != 5000 {
		t.Errorf("Limit = %v", info.Limit)
	}
	if info.Remaining == nil || *info.Remaining != 4999 {
		t.Errorf("Remaining = %v", info.Remaining)
	}
	if info.Used == nil || *info.Used != 1 {
		t.Errorf("Used = %v", info.Used)
	}
	if info.Reset == nil || !info.Reset.Equal(time.Unix(1704070800, 0)) {
		t.Errorf("Reset = %v", info.Reset)
	}
	if info.Resource != "core" {
		t.Errorf("Resource = %q", info.Resource)
	}
	if info.Exhausted() {
		t.Error("expected limit not exhausted")
	}
}

func TestParseRelativeReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := http.Header{}
	h.Set("X-RateLimit-Reset", "30")

	info := Parse(h, now)
	if info.Reset == nil || !info.Reset.Equal(now.Add(30*time.Second)) {
		t.Errorf("Reset = %v", info.Reset)
	}
}

func TestParseEmpty(t *testing.T) {
	if info := Parse(nil, time.Now()); !info.IsZero() {
		t.Errorf("expected zero info, got %+v", info)
	}
	h := http.Header{}
	h.Set("X-RateLimit-Remaining", "lots")
	info := Parse(h, time.Now())
	if !info.IsZero() {
		t.Errorf("expected unparsable values to be dropped, got %+v", info)
	}
	if info.Meta() != nil {
		t.Errorf("expected nil meta, got %v", info.Meta())
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		value  string
		want   time.Duration
		wantOK bool
	}{
		{"missing", "", 0, false},
		{"seconds", "5", 5 * time.Second, true},
		{"negative", "-3", 0, true},
		{"http date", now.Add(2 * time.Second).Format(http.TimeFormat), 2 * time.Second, true},
		{"past date", now.Add(-time.Hour).Format(http.TimeFormat), 0, true},
		{"garbage", "soon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set("Retry-After", tt.value)
			}
			got, ok := RetryAfter(h, now)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("RetryAfter(%q) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

type limitedErr struct{ delay time.Duration }

func (e limitedErr) Error() string                      { return "rate limited" }
func (e limitedErr) RetryDelay(time.Time) time.Duration { return e.delay }

func TestWait(t *testing.T) {
	var slept []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	waited, err := Wait(context.Background(), sleep, errors.New("boom"), 0)
	if waited || err != nil {
		t.Errorf("non rate limit error: waited=%v err=%v", waited, err)
	}

	waited, err = Wait(context.Background(), sleep, limitedErr{delay: 3 * time.Second}, time.Minute)
	if !waited || err != nil {
		t.Errorf("waited=%v err=%v", waited, err)
	}
	if len(slept) != 1 || slept[0] != 3*time.Second {
		t.Errorf("slept = %v", slept)
	}
}

func TestWaitTooLong(t *testing.T) {
	called := false
	sleep := func(context.Context, time.Duration) error {
		called = true
		return nil
	}
	cause := limitedErr{delay: time.Hour}

	waited, err := Wait(context.Background(), sleep, cause, time.Minute)
	if waited || called {
		t.Error("expected no wait")
	}
	var tooLong *TooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected TooLongError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected TooLongError to unwrap to the rate limit error")
	}
}

func TestWaitSleepError(t *testing.T) {
	sleep := func(context.Context, time.Duration) error { return context.Canceled }
	_, err := Wait(context.Background(), sleep, limitedErr{delay: time.Second}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
