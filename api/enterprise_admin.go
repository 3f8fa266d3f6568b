package api

import (
	"context"
	"net/http"
)

type EnterpriseAdminGetAuditLogQuery struct {
	Phrase *string
	// Include is "web", "git" or "all".
	Include *string
	After   *string
	Before  *string
	// Order is "desc" or "asc".
	Order   *string
	Page    *int64
	PerPage *int64
}

func EnterpriseAdminGetAuditLogURL(baseURL, enterprise string, q *EnterpriseAdminGetAuditLogQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/enterprises/").path(enterprise).lit("/audit-log")
	if q != nil {
		u.query("phrase", q.Phrase).
			query("include", q.Include).
			query("after", q.After).
			query("before", q.Before).
			query("order", q.Order).
			query("page", q.Page).
			query("per_page", q.PerPage)
	}
	return finishURL("enterprise-admin/get-audit-log", u)
}

func NewEnterpriseAdminGetAuditLogRequest(baseURL, enterprise string, q *EnterpriseAdminGetAuditLogQuery, userAgent, accept string) (*Request, error) {
	url, err := EnterpriseAdminGetAuditLogURL(baseURL, enterprise, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("enterprise-admin/get-audit-log", http.MethodGet, url, userAgent, accept, nil)
}

func (s EnterpriseAdminService[R]) GetAuditLog(ctx context.Context, enterprise string, q *EnterpriseAdminGetAuditLogQuery) (R, error) {
	cfg := s.c.config
	req, err := NewEnterpriseAdminGetAuditLogRequest(cfg.BaseURL, enterprise, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

// EnterpriseAdminListProvisionedGroupsEnterpriseQuery uses the SCIM
// parameter names, which are camel case.
type EnterpriseAdminListProvisionedGroupsEnterpriseQuery struct {
	StartIndex         *int64
	Count              *int64
	Filter             *string
	ExcludedAttributes *string
}

func EnterpriseAdminListProvisionedGroupsEnterpriseURL(baseURL, enterprise string, q *EnterpriseAdminListProvisionedGroupsEnterpriseQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/scim/v2/enterprises/").path(enterprise).lit("/Groups")
	if q != nil {
		u.query("startIndex", q.StartIndex).
			query("count", q.Count).
			query("filter", q.Filter).
			query("excludedAttributes", q.ExcludedAttributes)
	}
	return finishURL("enterprise-admin/list-provisioned-groups-enterprise", u)
}

func NewEnterpriseAdminListProvisionedGroupsEnterpriseRequest(baseURL, enterprise string, q *EnterpriseAdminListProvisionedGroupsEnterpriseQuery, userAgent, accept string) (*Request, error) {
	url, err := EnterpriseAdminListProvisionedGroupsEnterpriseURL(baseURL, enterprise, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("enterprise-admin/list-provisioned-groups-enterprise", http.MethodGet, url, userAgent, accept, nil)
}

func (s EnterpriseAdminService[R]) ListProvisionedGroupsEnterprise(ctx context.Context, enterprise string, q *EnterpriseAdminListProvisionedGroupsEnterpriseQuery) (R, error) {
	cfg := s.c.config
	req, err := NewEnterpriseAdminListProvisionedGroupsEnterpriseRequest(cfg.BaseURL, enterprise, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
