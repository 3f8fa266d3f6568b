package api

import (
	"context"
	"net/http"
)

type SearchCommitsQuery struct {
	// Sort is "author-date" or "committer-date".
	Sort    *string
	Order   *string
	PerPage *int64
	Page    *int64
}

// SetSort fills Sort and Order from s.
func (q *SearchCommitsQuery) SetSort(s Sort) {
	q.Sort, q.Order = s.Extract()
}

// SearchCommitsURL builds the commit search URL. q is the search
// expression and is always sent, even when empty.
func SearchCommitsURL(baseURL, q string, opts *SearchCommitsQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/search/commits").query("q", q)
	if opts != nil {
		u.query("sort", opts.Sort).
			query("order", opts.Order).
			query("per_page", opts.PerPage).
			query("page", opts.Page)
	}
	return finishURL("search/commits", u)
}

func NewSearchCommitsRequest(baseURL, q string, opts *SearchCommitsQuery, userAgent, accept string) (*Request, error) {
	url, err := SearchCommitsURL(baseURL, q, opts)
	if err != nil {
		return nil, err
	}
	return NewRequest("search/commits", http.MethodGet, url, userAgent, accept, nil)
}

func (s SearchService[R]) Commits(ctx context.Context, q string, opts *SearchCommitsQuery) (R, error) {
	cfg := s.c.config
	req, err := NewSearchCommitsRequest(cfg.BaseURL, q, opts, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
