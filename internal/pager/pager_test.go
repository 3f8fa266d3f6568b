package pager

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoglue/octoglue/internal/apierr"
)

type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.slept = append(s.slept, d)
	return nil
}

func newTestPager(s *sleepRecorder) *Pager {
	return &Pager{
		Sleep:      s.sleep,
		MaxRetries: 3,
		NewBackOff: func() backoff.BackOff { return backoff.NewConstantBackOff(10 * time.Millisecond) },
	}
}

func TestAllStopsAtEmptyPage(t *testing.T) {
	pages := map[int][]string{1: {"a", "b"}, 2: {"c"}}
	var requested []int

	got, err := All(context.Background(), newTestPager(&sleepRecorder{}), func(_ context.Context, page int) ([]string, error) {
		requested = append(requested, page)
		return pages[page], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []int{1, 2, 3}, requested)
}

func TestEachPropagatesCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Each(context.Background(), newTestPager(&sleepRecorder{}), func(context.Context, int) ([]int, error) {
		calls++
		return []int{1}, nil
	}, func([]int) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRetryServerError(t *testing.T) {
	rec := &sleepRecorder{}
	attempts := 0
	items, err := Page(context.Background(), newTestPager(rec), 1, func(context.Context, int) ([]int, error) {
		attempts++
		if attempts < 3 {
			return nil, &apierr.APIError{StatusCode: 502}
		}
		return []int{42}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{42}, items)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, rec.slept)
}

func TestRetryGivesUp(t *testing.T) {
	rec := &sleepRecorder{}
	attempts := 0
	_, err := Page(context.Background(), newTestPager(rec), 1, func(context.Context, int) ([]int, error) {
		attempts++
		return nil, &apierr.APIError{StatusCode: 500}
	})
	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	assert.Len(t, rec.slept, 3)
}

func TestRetryLeavesServerErrorsToTransport(t *testing.T) {
	rec := &sleepRecorder{}
	p := newTestPager(rec)
	p.TransportRetries = true

	attempts := 0
	_, err := Page(context.Background(), p, 1, func(context.Context, int) ([]int, error) {
		attempts++
		return nil, &apierr.APIError{StatusCode: 502}
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, rec.slept)

	attempts = 0
	_, err = Page(context.Background(), p, 1, func(context.Context, int) ([]int, error) {
		attempts++
		if attempts == 1 {
			return nil, &apierr.RateLimitError{RetryAfter: 3 * time.Second}
		}
		return []int{1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{3 * time.Second}, rec.slept)
}

func TestRetrySkipsPermanentErrors(t *testing.T) {
	rec := &sleepRecorder{}
	attempts := 0
	_, err := Page(context.Background(), newTestPager(rec), 1, func(context.Context, int) ([]int, error) {
		attempts++
		return nil, &apierr.APIError{StatusCode: 404}
	})
	assert.True(t, apierr.IsNotFoundError(err))
	assert.Equal(t, 1, attempts)
	assert.Empty(t, rec.slept)

	attempts = 0
	inner := errors.New("decode failed")
	_, err = Page(context.Background(), newTestPager(rec), 1, func(context.Context, int) ([]int, error) {
		attempts++
		return nil, backoff.Permanent(inner)
	})
	assert.Equal(t, inner, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWaitsForRateLimit(t *testing.T) {
	rec := &sleepRecorder{}
	attempts := 0
	_, err := Page(context.Background(), newTestPager(rec), 1, func(context.Context, int) ([]int, error) {
		attempts++
		if attempts == 1 {
			return nil, &apierr.RateLimitError{RetryAfter: 7 * time.Second, Secondary: true}
		}
		return []int{1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, rec.slept)
}

func TestRetryRateLimitExceedsMaxWait(t *testing.T) {
	rec := &sleepRecorder{}
	p := newTestPager(rec)
	p.MaxWait = time.Second

	_, err := Page(context.Background(), p, 1, func(context.Context, int) ([]int, error) {
		return nil, &apierr.RateLimitError{RetryAfter: time.Hour}
	})
	require.Error(t, err)
	assert.True(t, apierr.IsRateLimitError(err))
	assert.Contains(t, err.Error(), "exceeds max wait")
	assert.Empty(t, rec.slept)
}

func TestNextLink(t *testing.T) {
	h := http.Header{}
	h.Set("Link", `<https://api.github.com/user/repos?page=3&per_page=100>; rel="next", <https://api.github.com/user/repos?page=50&per_page=100>; rel="last"`)
	assert.Equal(t, "https://api.github.com/user/repos?page=3&per_page=100", NextLink(h))

	h.Set("Link", `<https://api.github.com/user/repos?page=1>; rel="prev"`)
	assert.Empty(t, NextLink(h))
	assert.Empty(t, NextLink(http.Header{}))
}
