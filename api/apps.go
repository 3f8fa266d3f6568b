package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

func AppsGetAuthenticatedURL(baseURL string) (string, error) {
	return finishURL("apps/get-authenticated", newURLBuilder(baseURL).lit("/app"))
}

func NewAppsGetAuthenticatedRequest(baseURL, userAgent, accept string) (*Request, error) {
	url, err := AppsGetAuthenticatedURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("apps/get-authenticated", http.MethodGet, url, userAgent, accept, nil)
}

// GetAuthenticated returns the GitHub App the request is authenticated
// as. It requires AppJWT authentication.
func (s AppsService[R]) GetAuthenticated(ctx context.Context) (R, error) {
	cfg := s.c.config
	req, err := NewAppsGetAuthenticatedRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type AppsListInstallationReposForAuthenticatedUserQuery struct {
	PerPage *int64
	Page    *int64
}

func AppsListInstallationReposForAuthenticatedUserURL(baseURL string, installationID int64, q *AppsListInstallationReposForAuthenticatedUserQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/user/installations/").path(installationID).lit("/repositories")
	if q != nil {
		u.query("per_page", q.PerPage).query("page", q.Page)
	}
	return finishURL("apps/list-installation-repos-for-authenticated-user", u)
}

func NewAppsListInstallationReposForAuthenticatedUserRequest(baseURL string, installationID int64, q *AppsListInstallationReposForAuthenticatedUserQuery, userAgent, accept string) (*Request, error) {
	url, err := AppsListInstallationReposForAuthenticatedUserURL(baseURL, installationID, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("apps/list-installation-repos-for-authenticated-user", http.MethodGet, url, userAgent, accept, nil)
}

func (s AppsService[R]) ListInstallationReposForAuthenticatedUser(ctx context.Context, installationID int64, q *AppsListInstallationReposForAuthenticatedUserQuery) (R, error) {
	cfg := s.c.config
	req, err := NewAppsListInstallationReposForAuthenticatedUserRequest(cfg.BaseURL, installationID, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type AppsUpdateWebhookConfigForAppBody struct {
	URL *string `json:"url,omitzero"`
	// ContentType is "json" or "form".
	ContentType *string `json:"content_type,omitzero"`
	Secret      *string `json:"secret,omitzero"`
	// InsecureSSL is "0", "1" or a number.
	InsecureSSL          any            `json:"insecure_ssl,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b AppsUpdateWebhookConfigForAppBody) MarshalJSON() ([]byte, error) {
	type plain AppsUpdateWebhookConfigForAppBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *AppsUpdateWebhookConfigForAppBody) UnmarshalJSON(data []byte) error {
	type plain AppsUpdateWebhookConfigForAppBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func AppsUpdateWebhookConfigForAppURL(baseURL string) (string, error) {
	return finishURL("apps/update-webhook-config-for-app", newURLBuilder(baseURL).lit("/app/hook/config"))
}

func NewAppsUpdateWebhookConfigForAppRequest(baseURL, userAgent, accept string, content *Content) (*Request, error) {
	url, err := AppsUpdateWebhookConfigForAppURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("apps/update-webhook-config-for-app", http.MethodPatch, url, userAgent, accept, content)
}

func (s AppsService[R]) UpdateWebhookConfigForApp(ctx context.Context, body *AppsUpdateWebhookConfigForAppBody) (R, error) {
	content, err := s.c.jsonBody("apps/update-webhook-config-for-app", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewAppsUpdateWebhookConfigForAppRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
