package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type PullsCreateReviewComment struct {
	Path string `json:"path"`
	// Position is the diff position. Prefer Line and Side.
	Position             *int64         `json:"position,omitzero"`
	Body                 string         `json:"body"`
	Line                 *int64         `json:"line,omitzero"`
	Side                 *string        `json:"side,omitzero"`
	StartLine            *int64         `json:"start_line,omitzero"`
	StartSide            *string        `json:"start_side,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (c PullsCreateReviewComment) MarshalJSON() ([]byte, error) {
	type plain PullsCreateReviewComment
	return jsonext.Marshal(plain(c), c.AdditionalProperties)
}

func (c *PullsCreateReviewComment) UnmarshalJSON(data []byte) error {
	type plain PullsCreateReviewComment
	return jsonext.Unmarshal(data, (*plain)(c), &c.AdditionalProperties)
}

type PullsCreateReviewBody struct {
	CommitID *string `json:"commit_id,omitzero"`
	Body     *string `json:"body,omitzero"`
	// Event is "APPROVE", "REQUEST_CHANGES" or "COMMENT". Leaving it empty
	// creates a pending review.
	Event                *string                    `json:"event,omitzero"`
	Comments             []PullsCreateReviewComment `json:"comments,omitzero"`
	AdditionalProperties map[string]any             `json:"-"`
}

func (b PullsCreateReviewBody) MarshalJSON() ([]byte, error) {
	type plain PullsCreateReviewBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *PullsCreateReviewBody) UnmarshalJSON(data []byte) error {
	type plain PullsCreateReviewBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func PullsCreateReviewURL(baseURL, owner, repo string, pullNumber int64) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/pulls/").path(pullNumber).lit("/reviews")
	return finishURL("pulls/create-review", u)
}

func NewPullsCreateReviewRequest(baseURL, owner, repo string, pullNumber int64, userAgent, accept string, content *Content) (*Request, error) {
	url, err := PullsCreateReviewURL(baseURL, owner, repo, pullNumber)
	if err != nil {
		return nil, err
	}
	return NewRequest("pulls/create-review", http.MethodPost, url, userAgent, accept, content)
}

func (s PullsService[R]) CreateReview(ctx context.Context, owner, repo string, pullNumber int64, body *PullsCreateReviewBody) (R, error) {
	content, err := s.c.jsonBody("pulls/create-review", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewPullsCreateReviewRequest(cfg.BaseURL, owner, repo, pullNumber, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

func PullsGetURL(baseURL, owner, repo string, pullNumber int64) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/pulls/").path(pullNumber)
	return finishURL("pulls/get", u)
}

func NewPullsGetRequest(baseURL, owner, repo string, pullNumber int64, userAgent, accept string) (*Request, error) {
	url, err := PullsGetURL(baseURL, owner, repo, pullNumber)
	if err != nil {
		return nil, err
	}
	return NewRequest("pulls/get", http.MethodGet, url, userAgent, accept, nil)
}

// Get fetches a pull request. With Accept "application/vnd.github.diff"
// the body is the raw diff instead of JSON.
func (s PullsService[R]) Get(ctx context.Context, owner, repo string, pullNumber int64) (R, error) {
	cfg := s.c.config
	req, err := NewPullsGetRequest(cfg.BaseURL, owner, repo, pullNumber, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type PullsListReviewCommentsForRepoQuery struct {
	Sort      *string
	Direction *string
	Since     *string
	PerPage   *int64
	Page      *int64
}

// SetSort fills Sort and Direction from s.
func (q *PullsListReviewCommentsForRepoQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

func PullsListReviewCommentsForRepoURL(baseURL, owner, repo string, q *PullsListReviewCommentsForRepoQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/pulls/comments")
	if q != nil {
		u.query("sort", q.Sort).
			query("direction", q.Direction).
			query("since", q.Since).
			query("per_page", q.PerPage).
			query("page", q.Page)
	}
	return finishURL("pulls/list-review-comments-for-repo", u)
}

func NewPullsListReviewCommentsForRepoRequest(baseURL, owner, repo string, q *PullsListReviewCommentsForRepoQuery, userAgent, accept string) (*Request, error) {
	url, err := PullsListReviewCommentsForRepoURL(baseURL, owner, repo, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("pulls/list-review-comments-for-repo", http.MethodGet, url, userAgent, accept, nil)
}

func (s PullsService[R]) ListReviewCommentsForRepo(ctx context.Context, owner, repo string, q *PullsListReviewCommentsForRepoQuery) (R, error) {
	cfg := s.c.config
	req, err := NewPullsListReviewCommentsForRepoRequest(cfg.BaseURL, owner, repo, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
