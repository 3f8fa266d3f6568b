package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type SCIMListProvisionedIdentitiesQuery struct {
	// StartIndex is 1-based.
	StartIndex *int64
	Count      *int64
	// Filter accepts userName, externalId, id and displayName with the
	// eq operator, e.g. `userName eq "octocat"`.
	Filter *string
}

func SCIMListProvisionedIdentitiesURL(baseURL, org string, q *SCIMListProvisionedIdentitiesQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/scim/v2/organizations/").path(org).lit("/Users")
	if q != nil {
		u.query("startIndex", q.StartIndex).
			query("count", q.Count).
			query("filter", q.Filter)
	}
	return finishURL("scim/list-provisioned-identities", u)
}

func NewSCIMListProvisionedIdentitiesRequest(baseURL, org string, q *SCIMListProvisionedIdentitiesQuery, userAgent, accept string) (*Request, error) {
	url, err := SCIMListProvisionedIdentitiesURL(baseURL, org, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("scim/list-provisioned-identities", http.MethodGet, url, userAgent, accept, nil)
}

func (s SCIMService[R]) ListProvisionedIdentities(ctx context.Context, org string, q *SCIMListProvisionedIdentitiesQuery) (R, error) {
	cfg := s.c.config
	req, err := NewSCIMListProvisionedIdentitiesRequest(cfg.BaseURL, org, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type SCIMUserName struct {
	GivenName            string         `json:"givenName"`
	FamilyName           string         `json:"familyName"`
	Formatted            *string        `json:"formatted,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (n SCIMUserName) MarshalJSON() ([]byte, error) {
	type plain SCIMUserName
	return jsonext.Marshal(plain(n), n.AdditionalProperties)
}

func (n *SCIMUserName) UnmarshalJSON(data []byte) error {
	type plain SCIMUserName
	return jsonext.Unmarshal(data, (*plain)(n), &n.AdditionalProperties)
}

type SCIMUserEmail struct {
	Value                string         `json:"value"`
	Primary              *bool          `json:"primary,omitzero"`
	Type                 *string        `json:"type,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (e SCIMUserEmail) MarshalJSON() ([]byte, error) {
	type plain SCIMUserEmail
	return jsonext.Marshal(plain(e), e.AdditionalProperties)
}

func (e *SCIMUserEmail) UnmarshalJSON(data []byte) error {
	type plain SCIMUserEmail
	return jsonext.Unmarshal(data, (*plain)(e), &e.AdditionalProperties)
}

type SCIMProvisionAndInviteUserBody struct {
	UserName             string          `json:"userName"`
	DisplayName          *string         `json:"displayName,omitzero"`
	Name                 SCIMUserName    `json:"name"`
	Emails               []SCIMUserEmail `json:"emails"`
	Schemas              []string        `json:"schemas,omitzero"`
	ExternalID           *string         `json:"externalId,omitzero"`
	Groups               []string        `json:"groups,omitzero"`
	Active               *bool           `json:"active,omitzero"`
	AdditionalProperties map[string]any  `json:"-"`
}

func (b SCIMProvisionAndInviteUserBody) MarshalJSON() ([]byte, error) {
	type plain SCIMProvisionAndInviteUserBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *SCIMProvisionAndInviteUserBody) UnmarshalJSON(data []byte) error {
	type plain SCIMProvisionAndInviteUserBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func SCIMProvisionAndInviteUserURL(baseURL, org string) (string, error) {
	u := newURLBuilder(baseURL).lit("/scim/v2/organizations/").path(org).lit("/Users")
	return finishURL("scim/provision-and-invite-user", u)
}

func NewSCIMProvisionAndInviteUserRequest(baseURL, org, userAgent, accept string, content *Content) (*Request, error) {
	url, err := SCIMProvisionAndInviteUserURL(baseURL, org)
	if err != nil {
		return nil, err
	}
	return NewRequest("scim/provision-and-invite-user", http.MethodPost, url, userAgent, accept, content)
}

// ProvisionAndInviteUser provisions an organization membership for a
// user and sends an invitation to the email address.
func (s SCIMService[R]) ProvisionAndInviteUser(ctx context.Context, org string, body *SCIMProvisionAndInviteUserBody) (R, error) {
	content, err := s.c.jsonBody("scim/provision-and-invite-user", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewSCIMProvisionAndInviteUserRequest(cfg.BaseURL, org, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
