package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type TeamsListIdPGroupsForOrgQuery struct {
	PerPage *int64
	// Page is an opaque token, not a number.
	Page *string
}

func TeamsListIdPGroupsForOrgURL(baseURL, org string, q *TeamsListIdPGroupsForOrgQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/team-sync/groups")
	if q != nil {
		u.query("per_page", q.PerPage).query("page", q.Page)
	}
	return finishURL("teams/list-idp-groups-for-org", u)
}

func NewTeamsListIdPGroupsForOrgRequest(baseURL, org string, q *TeamsListIdPGroupsForOrgQuery, userAgent, accept string) (*Request, error) {
	url, err := TeamsListIdPGroupsForOrgURL(baseURL, org, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("teams/list-idp-groups-for-org", http.MethodGet, url, userAgent, accept, nil)
}

func (s TeamsService[R]) ListIdPGroupsForOrg(ctx context.Context, org string, q *TeamsListIdPGroupsForOrgQuery) (R, error) {
	cfg := s.c.config
	req, err := NewTeamsListIdPGroupsForOrgRequest(cfg.BaseURL, org, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type TeamsUpdateInOrgBody struct {
	Name        *string `json:"name,omitzero"`
	Description *string `json:"description,omitzero"`
	// Privacy is "secret" or "closed".
	Privacy    *string `json:"privacy,omitzero"`
	Permission *string `json:"permission,omitzero"`
	// ParentTeamID set to null removes the parent team.
	ParentTeamID         Nullable[int64] `json:"parent_team_id,omitzero"`
	AdditionalProperties map[string]any  `json:"-"`
}

func (b TeamsUpdateInOrgBody) MarshalJSON() ([]byte, error) {
	type plain TeamsUpdateInOrgBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *TeamsUpdateInOrgBody) UnmarshalJSON(data []byte) error {
	type plain TeamsUpdateInOrgBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func TeamsUpdateInOrgURL(baseURL, org, teamSlug string) (string, error) {
	u := newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/teams/").path(teamSlug)
	return finishURL("teams/update-in-org", u)
}

func NewTeamsUpdateInOrgRequest(baseURL, org, teamSlug, userAgent, accept string, content *Content) (*Request, error) {
	url, err := TeamsUpdateInOrgURL(baseURL, org, teamSlug)
	if err != nil {
		return nil, err
	}
	return NewRequest("teams/update-in-org", http.MethodPatch, url, userAgent, accept, content)
}

func (s TeamsService[R]) UpdateInOrg(ctx context.Context, org, teamSlug string, body *TeamsUpdateInOrgBody) (R, error) {
	content, err := s.c.jsonBody("teams/update-in-org", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewTeamsUpdateInOrgRequest(cfg.BaseURL, org, teamSlug, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
