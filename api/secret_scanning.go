package api

import (
	"context"
	"net/http"
)

type SecretScanningListAlertsForEnterpriseQuery struct {
	// State is "open" or "resolved".
	State *string
	// SecretType and Resolution take comma separated lists.
	SecretType *string
	Resolution *string
	PerPage    *int64
	// Before and After are cursors from the Link header.
	Before *string
	After  *string
}

func SecretScanningListAlertsForEnterpriseURL(baseURL, enterprise string, q *SecretScanningListAlertsForEnterpriseQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/enterprises/").path(enterprise).lit("/secret-scanning/alerts")
	if q != nil {
		u.query("state", q.State).
			query("secret_type", q.SecretType).
			query("resolution", q.Resolution).
			query("per_page", q.PerPage).
			query("before", q.Before).
			query("after", q.After)
	}
	return finishURL("secret-scanning/list-alerts-for-enterprise", u)
}

func NewSecretScanningListAlertsForEnterpriseRequest(baseURL, enterprise string, q *SecretScanningListAlertsForEnterpriseQuery, userAgent, accept string) (*Request, error) {
	url, err := SecretScanningListAlertsForEnterpriseURL(baseURL, enterprise, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("secret-scanning/list-alerts-for-enterprise", http.MethodGet, url, userAgent, accept, nil)
}

func (s SecretScanningService[R]) ListAlertsForEnterprise(ctx context.Context, enterprise string, q *SecretScanningListAlertsForEnterpriseQuery) (R, error) {
	cfg := s.c.config
	req, err := NewSecretScanningListAlertsForEnterpriseRequest(cfg.BaseURL, enterprise, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
