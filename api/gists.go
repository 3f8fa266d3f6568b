package api

import (
	"context"
	"net/http"
)

type GistsListPublicQuery struct {
	Since   *string
	PerPage *int64
	Page    *int64
}

func GistsListPublicURL(baseURL string, q *GistsListPublicQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/gists/public")
	if q != nil {
		u.query("since", q.Since).query("per_page", q.PerPage).query("page", q.Page)
	}
	return finishURL("gists/list-public", u)
}

func NewGistsListPublicRequest(baseURL string, q *GistsListPublicQuery, userAgent, accept string) (*Request, error) {
	url, err := GistsListPublicURL(baseURL, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("gists/list-public", http.MethodGet, url, userAgent, accept, nil)
}

// ListPublic lists public gists, most recently updated first. Only the
// first 3000 are reachable through pagination.
func (s GistsService[R]) ListPublic(ctx context.Context, q *GistsListPublicQuery) (R, error) {
	cfg := s.c.config
	req, err := NewGistsListPublicRequest(cfg.BaseURL, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
