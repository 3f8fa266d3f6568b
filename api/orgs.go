package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type OrgsCreateWebhookConfig struct {
	URL                  string         `json:"url"`
	ContentType          *string        `json:"content_type,omitzero"`
	Secret               *string        `json:"secret,omitzero"`
	InsecureSSL          any            `json:"insecure_ssl,omitzero"`
	Username             *string        `json:"username,omitzero"`
	Password             *string        `json:"password,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (c OrgsCreateWebhookConfig) MarshalJSON() ([]byte, error) {
	type plain OrgsCreateWebhookConfig
	return jsonext.Marshal(plain(c), c.AdditionalProperties)
}

func (c *OrgsCreateWebhookConfig) UnmarshalJSON(data []byte) error {
	type plain OrgsCreateWebhookConfig
	return jsonext.Unmarshal(data, (*plain)(c), &c.AdditionalProperties)
}

type OrgsCreateWebhookBody struct {
	// Name must be "web".
	Name                 string                  `json:"name"`
	Config               OrgsCreateWebhookConfig `json:"config"`
	Events               []string                `json:"events,omitzero"`
	Active               *bool                   `json:"active,omitzero"`
	AdditionalProperties map[string]any          `json:"-"`
}

func (b OrgsCreateWebhookBody) MarshalJSON() ([]byte, error) {
	type plain OrgsCreateWebhookBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *OrgsCreateWebhookBody) UnmarshalJSON(data []byte) error {
	type plain OrgsCreateWebhookBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func OrgsCreateWebhookURL(baseURL, org string) (string, error) {
	return finishURL("orgs/create-webhook", newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/hooks"))
}

func NewOrgsCreateWebhookRequest(baseURL, org, userAgent, accept string, content *Content) (*Request, error) {
	url, err := OrgsCreateWebhookURL(baseURL, org)
	if err != nil {
		return nil, err
	}
	return NewRequest("orgs/create-webhook", http.MethodPost, url, userAgent, accept, content)
}

func (s OrgsService[R]) CreateWebhook(ctx context.Context, org string, body *OrgsCreateWebhookBody) (R, error) {
	content, err := s.c.jsonBody("orgs/create-webhook", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewOrgsCreateWebhookRequest(cfg.BaseURL, org, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type OrgsListForAuthenticatedUserQuery struct {
	PerPage *int64
	Page    *int64
}

func OrgsListForAuthenticatedUserURL(baseURL string, q *OrgsListForAuthenticatedUserQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/user/orgs")
	if q != nil {
		u.query("per_page", q.PerPage).query("page", q.Page)
	}
	return finishURL("orgs/list-for-authenticated-user", u)
}

func NewOrgsListForAuthenticatedUserRequest(baseURL string, q *OrgsListForAuthenticatedUserQuery, userAgent, accept string) (*Request, error) {
	url, err := OrgsListForAuthenticatedUserURL(baseURL, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("orgs/list-for-authenticated-user", http.MethodGet, url, userAgent, accept, nil)
}

func (s OrgsService[R]) ListForAuthenticatedUser(ctx context.Context, q *OrgsListForAuthenticatedUserQuery) (R, error) {
	cfg := s.c.config
	req, err := NewOrgsListForAuthenticatedUserRequest(cfg.BaseURL, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type OrgsUpdateBody struct {
	BillingEmail    *string `json:"billing_email,omitzero"`
	Company         *string `json:"company,omitzero"`
	Email           *string `json:"email,omitzero"`
	TwitterUsername *string `json:"twitter_username,omitzero"`
	Location        *string `json:"location,omitzero"`
	Name            *string `json:"name,omitzero"`
	Description     *string `json:"description,omitzero"`
	Blog            *string `json:"blog,omitzero"`

	HasOrganizationProjects *bool `json:"has_organization_projects,omitzero"`
	HasRepositoryProjects   *bool `json:"has_repository_projects,omitzero"`

	// DefaultRepositoryPermission is "read", "write", "admin" or "none".
	DefaultRepositoryPermission *string `json:"default_repository_permission,omitzero"`

	MembersCanCreateRepositories         *bool   `json:"members_can_create_repositories,omitzero"`
	MembersCanCreateInternalRepositories *bool   `json:"members_can_create_internal_repositories,omitzero"`
	MembersCanCreatePrivateRepositories  *bool   `json:"members_can_create_private_repositories,omitzero"`
	MembersCanCreatePublicRepositories   *bool   `json:"members_can_create_public_repositories,omitzero"`
	MembersAllowedRepositoryCreationType *string `json:"members_allowed_repository_creation_type,omitzero"`
	MembersCanCreatePages                *bool   `json:"members_can_create_pages,omitzero"`
	MembersCanCreatePublicPages          *bool   `json:"members_can_create_public_pages,omitzero"`
	MembersCanCreatePrivatePages         *bool   `json:"members_can_create_private_pages,omitzero"`
	MembersCanForkPrivateRepositories    *bool   `json:"members_can_fork_private_repositories,omitzero"`

	AdditionalProperties map[string]any `json:"-"`
}

func (b OrgsUpdateBody) MarshalJSON() ([]byte, error) {
	type plain OrgsUpdateBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *OrgsUpdateBody) UnmarshalJSON(data []byte) error {
	type plain OrgsUpdateBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func OrgsUpdateURL(baseURL, org string) (string, error) {
	return finishURL("orgs/update", newURLBuilder(baseURL).lit("/orgs/").path(org))
}

func NewOrgsUpdateRequest(baseURL, org, userAgent, accept string, content *Content) (*Request, error) {
	url, err := OrgsUpdateURL(baseURL, org)
	if err != nil {
		return nil, err
	}
	return NewRequest("orgs/update", http.MethodPatch, url, userAgent, accept, content)
}

func (s OrgsService[R]) Update(ctx context.Context, org string, body *OrgsUpdateBody) (R, error) {
	content, err := s.c.jsonBody("orgs/update", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewOrgsUpdateRequest(cfg.BaseURL, org, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type OrgsUpdateWebhookConfigForOrgBody struct {
	URL                  *string        `json:"url,omitzero"`
	ContentType          *string        `json:"content_type,omitzero"`
	Secret               *string        `json:"secret,omitzero"`
	InsecureSSL          any            `json:"insecure_ssl,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b OrgsUpdateWebhookConfigForOrgBody) MarshalJSON() ([]byte, error) {
	type plain OrgsUpdateWebhookConfigForOrgBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *OrgsUpdateWebhookConfigForOrgBody) UnmarshalJSON(data []byte) error {
	type plain OrgsUpdateWebhookConfigForOrgBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func OrgsUpdateWebhookConfigForOrgURL(baseURL, org string, hookID int64) (string, error) {
	u := newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/hooks/").path(hookID).lit("/config")
	return finishURL("orgs/update-webhook-config-for-org", u)
}

func NewOrgsUpdateWebhookConfigForOrgRequest(baseURL, org string, hookID int64, userAgent, accept string, content *Content) (*Request, error) {
	url, err := OrgsUpdateWebhookConfigForOrgURL(baseURL, org, hookID)
	if err != nil {
		return nil, err
	}
	return NewRequest("orgs/update-webhook-config-for-org", http.MethodPatch, url, userAgent, accept, content)
}

func (s OrgsService[R]) UpdateWebhookConfigForOrg(ctx context.Context, org string, hookID int64, body *OrgsUpdateWebhookConfigForOrgBody) (R, error) {
	content, err := s.c.jsonBody("orgs/update-webhook-config-for-org", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewOrgsUpdateWebhookConfigForOrgRequest(cfg.BaseURL, org, hookID, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
