package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type OAuthAuthorizationsUpdateAuthorizationBody struct {
	// Scopes replaces the scope list; null removes every scope.
	Scopes               Nullable[[]string] `json:"scopes,omitzero"`
	AddScopes            []string           `json:"add_scopes,omitzero"`
	RemoveScopes         []string           `json:"remove_scopes,omitzero"`
	Note                 *string            `json:"note,omitzero"`
	NoteURL              *string            `json:"note_url,omitzero"`
	Fingerprint          *string            `json:"fingerprint,omitzero"`
	AdditionalProperties map[string]any     `json:"-"`
}

func (b OAuthAuthorizationsUpdateAuthorizationBody) MarshalJSON() ([]byte, error) {
	type plain OAuthAuthorizationsUpdateAuthorizationBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *OAuthAuthorizationsUpdateAuthorizationBody) UnmarshalJSON(data []byte) error {
	type plain OAuthAuthorizationsUpdateAuthorizationBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func OAuthAuthorizationsUpdateAuthorizationURL(baseURL string, authorizationID int64) (string, error) {
	u := newURLBuilder(baseURL).lit("/authorizations/").path(authorizationID)
	return finishURL("oauth-authorizations/update-authorization", u)
}

func NewOAuthAuthorizationsUpdateAuthorizationRequest(baseURL string, authorizationID int64, userAgent, accept string, content *Content) (*Request, error) {
	url, err := OAuthAuthorizationsUpdateAuthorizationURL(baseURL, authorizationID)
	if err != nil {
		return nil, err
	}
	return NewRequest("oauth-authorizations/update-authorization", http.MethodPatch, url, userAgent, accept, content)
}

// UpdateAuthorization edits an OAuth authorization. Only Basic
// authentication is accepted by this endpoint.
func (s OAuthAuthorizationsService[R]) UpdateAuthorization(ctx context.Context, authorizationID int64, body *OAuthAuthorizationsUpdateAuthorizationBody) (R, error) {
	content, err := s.c.jsonBody("oauth-authorizations/update-authorization", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewOAuthAuthorizationsUpdateAuthorizationRequest(cfg.BaseURL, authorizationID, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
