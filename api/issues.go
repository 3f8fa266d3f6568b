package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type IssuesCreateBody struct {
	// Title is a string or a number.
	Title any     `json:"title"`
	Body  *string `json:"body,omitzero"`
	// Assignee is deprecated in favour of Assignees. Null clears it.
	Assignee Nullable[string] `json:"assignee,omitzero"`
	// Milestone is the milestone number, as a string or a number.
	Milestone Nullable[any] `json:"milestone,omitzero"`
	// Labels holds label names or objects with a "name" member.
	Labels               []any          `json:"labels,omitzero"`
	Assignees            []string       `json:"assignees,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b IssuesCreateBody) MarshalJSON() ([]byte, error) {
	type plain IssuesCreateBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *IssuesCreateBody) UnmarshalJSON(data []byte) error {
	type plain IssuesCreateBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func IssuesCreateURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/issues")
	return finishURL("issues/create", u)
}

func NewIssuesCreateRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := IssuesCreateURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("issues/create", http.MethodPost, url, userAgent, accept, content)
}

func (s IssuesService[R]) Create(ctx context.Context, owner, repo string, body *IssuesCreateBody) (R, error) {
	content, err := s.c.jsonBody("issues/create", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewIssuesCreateRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type IssuesListQuery struct {
	Filter    *string
	State     *string
	Labels    *string
	Sort      *string
	Direction *string
	Since     *string
	Collab    *bool
	Orgs      *bool
	Owned     *bool
	Pulls     *bool
	PerPage   *int64
	Page      *int64
}

// SetFilter copies the fields of f into q.
func (q *IssuesListQuery) SetFilter(f IssueFilter) {
	q.Filter, q.State, q.Labels, q.Since = f.Filter, f.State, f.Labels, f.Since
}

// SetSort fills Sort and Direction from s.
func (q *IssuesListQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

// IssuesListURL builds the URL listing issues across every repository
// visible to the authenticated user, pull requests included.
func IssuesListURL(baseURL string, q *IssuesListQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/issues")
	if q != nil {
		u.query("filter", q.Filter).
			query("state", q.State).
			query("labels", q.Labels).
			query("sort", q.Sort).
			query("direction", q.Direction).
			query("since", q.Since).
			query("collab", q.Collab).
			query("orgs", q.Orgs).
			query("owned", q.Owned).
			query("pulls", q.Pulls).
			query("per_page", q.PerPage).
			query("page", q.Page)
	}
	return finishURL("issues/list", u)
}

func NewIssuesListRequest(baseURL string, q *IssuesListQuery, userAgent, accept string) (*Request, error) {
	url, err := IssuesListURL(baseURL, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("issues/list", http.MethodGet, url, userAgent, accept, nil)
}

func (s IssuesService[R]) List(ctx context.Context, q *IssuesListQuery) (R, error) {
	cfg := s.c.config
	req, err := NewIssuesListRequest(cfg.BaseURL, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type IssuesListForAuthenticatedUserQuery struct {
	Filter    *string
	State     *string
	Labels    *string
	Sort      *string
	Direction *string
	Since     *string
	PerPage   *int64
	Page      *int64
}

// SetFilter copies the fields of f into q.
func (q *IssuesListForAuthenticatedUserQuery) SetFilter(f IssueFilter) {
	q.Filter, q.State, q.Labels, q.Since = f.Filter, f.State, f.Labels, f.Since
}

// SetSort fills Sort and Direction from s.
func (q *IssuesListForAuthenticatedUserQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

func IssuesListForAuthenticatedUserURL(baseURL string, q *IssuesListForAuthenticatedUserQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/user/issues")
	if q != nil {
		u.query("filter", q.Filter).
			query("state", q.State).
			query("labels", q.Labels).
			query("sort", q.Sort).
			query("direction", q.Direction).
			query("since", q.Since).
			query("per_page", q.PerPage).
			query("page", q.Page)
	}
	return finishURL("issues/list-for-authenticated-user", u)
}

func NewIssuesListForAuthenticatedUserRequest(baseURL string, q *IssuesListForAuthenticatedUserQuery, userAgent, accept string) (*Request, error) {
	url, err := IssuesListForAuthenticatedUserURL(baseURL, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("issues/list-for-authenticated-user", http.MethodGet, url, userAgent, accept, nil)
}

func (s IssuesService[R]) ListForAuthenticatedUser(ctx context.Context, q *IssuesListForAuthenticatedUserQuery) (R, error) {
	cfg := s.c.config
	req, err := NewIssuesListForAuthenticatedUserRequest(cfg.BaseURL, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
