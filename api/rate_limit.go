package api

import (
	"context"
	"net/http"
)

func RateLimitGetURL(baseURL string) (string, error) {
	return finishURL("rate-limit/get", newURLBuilder(baseURL).lit("/rate_limit"))
}

func NewRateLimitGetRequest(baseURL, userAgent, accept string) (*Request, error) {
	url, err := RateLimitGetURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("rate-limit/get", http.MethodGet, url, userAgent, accept, nil)
}

// Get returns the current rate limit status. Calling it does not count
// against the primary rate limit.
func (s RateLimitService[R]) Get(ctx context.Context) (R, error) {
	cfg := s.c.config
	req, err := NewRateLimitGetRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
