package api

import (
	"context"
	"net/http"
)

// CodeScanningDeleteAnalysisQuery carries confirm_delete. Set it to
// Null[string]() to send "confirm_delete=" which is required to delete the
// last analysis of a set.
type CodeScanningDeleteAnalysisQuery struct {
	ConfirmDelete Nullable[string]
}

func CodeScanningDeleteAnalysisURL(baseURL, owner, repo string, analysisID int64, q *CodeScanningDeleteAnalysisQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/code-scanning/analyses/").path(analysisID)
	if q != nil {
		u.query("confirm_delete", q.ConfirmDelete)
	}
	return finishURL("code-scanning/delete-analysis", u)
}

func NewCodeScanningDeleteAnalysisRequest(baseURL, owner, repo string, analysisID int64, q *CodeScanningDeleteAnalysisQuery, userAgent, accept string) (*Request, error) {
	url, err := CodeScanningDeleteAnalysisURL(baseURL, owner, repo, analysisID, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("code-scanning/delete-analysis", http.MethodDelete, url, userAgent, accept, nil)
}

// DeleteAnalysis deletes one code scanning analysis. Only the most recent
// analysis of a set is deletable; the response links the next one.
func (s CodeScanningService[R]) DeleteAnalysis(ctx context.Context, owner, repo string, analysisID int64, q *CodeScanningDeleteAnalysisQuery) (R, error) {
	cfg := s.c.config
	req, err := NewCodeScanningDeleteAnalysisRequest(cfg.BaseURL, owner, repo, analysisID, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type CodeScanningListAlertsForOrgQuery struct {
	ToolName  *string
	ToolGUID  Nullable[string]
	Before    *string
	After     *string
	Page      *int64
	PerPage   *int64
	Direction *string
	State     *string
	Sort      *string
}

// SetSort fills Sort and Direction from s.
func (q *CodeScanningListAlertsForOrgQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

func CodeScanningListAlertsForOrgURL(baseURL, org string, q *CodeScanningListAlertsForOrgQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/code-scanning/alerts")
	if q != nil {
		u.query("tool_name", q.ToolName).
			query("tool_guid", q.ToolGUID).
			query("before", q.Before).
			query("after", q.After).
			query("page", q.Page).
			query("per_page", q.PerPage).
			query("direction", q.Direction).
			query("state", q.State).
			query("sort", q.Sort)
	}
	return finishURL("code-scanning/list-alerts-for-org", u)
}

func NewCodeScanningListAlertsForOrgRequest(baseURL, org string, q *CodeScanningListAlertsForOrgQuery, userAgent, accept string) (*Request, error) {
	url, err := CodeScanningListAlertsForOrgURL(baseURL, org, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("code-scanning/list-alerts-for-org", http.MethodGet, url, userAgent, accept, nil)
}

func (s CodeScanningService[R]) ListAlertsForOrg(ctx context.Context, org string, q *CodeScanningListAlertsForOrgQuery) (R, error) {
	cfg := s.c.config
	req, err := NewCodeScanningListAlertsForOrgRequest(cfg.BaseURL, org, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type CodeScanningListAlertsForRepoQuery struct {
	ToolName  *string
	ToolGUID  Nullable[string]
	Page      *int64
	PerPage   *int64
	Ref       *string
	Direction *string
	Sort      *string
	State     *string
}

// SetSort fills Sort and Direction from s.
func (q *CodeScanningListAlertsForRepoQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

func CodeScanningListAlertsForRepoURL(baseURL, owner, repo string, q *CodeScanningListAlertsForRepoQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/code-scanning/alerts")
	if q != nil {
		u.query("tool_name", q.ToolName).
			query("tool_guid", q.ToolGUID).
			query("page", q.Page).
			query("per_page", q.PerPage).
			query("ref", q.Ref).
			query("direction", q.Direction).
			query("sort", q.Sort).
			query("state", q.State)
	}
	return finishURL("code-scanning/list-alerts-for-repo", u)
}

func NewCodeScanningListAlertsForRepoRequest(baseURL, owner, repo string, q *CodeScanningListAlertsForRepoQuery, userAgent, accept string) (*Request, error) {
	url, err := CodeScanningListAlertsForRepoURL(baseURL, owner, repo, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("code-scanning/list-alerts-for-repo", http.MethodGet, url, userAgent, accept, nil)
}

func (s CodeScanningService[R]) ListAlertsForRepo(ctx context.Context, owner, repo string, q *CodeScanningListAlertsForRepoQuery) (R, error) {
	cfg := s.c.config
	req, err := NewCodeScanningListAlertsForRepoRequest(cfg.BaseURL, owner, repo, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type CodeScanningListRecentAnalysesQuery struct {
	ToolName *string
	ToolGUID Nullable[string]
	Page     *int64
	PerPage  *int64
	Ref      *string
	SarifID  *string
}

func CodeScanningListRecentAnalysesURL(baseURL, owner, repo string, q *CodeScanningListRecentAnalysesQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/code-scanning/analyses")
	if q != nil {
		u.query("tool_name", q.ToolName).
			query("tool_guid", q.ToolGUID).
			query("page", q.Page).
			query("per_page", q.PerPage).
			query("ref", q.Ref).
			query("sarif_id", q.SarifID)
	}
	return finishURL("code-scanning/list-recent-analyses", u)
}

func NewCodeScanningListRecentAnalysesRequest(baseURL, owner, repo string, q *CodeScanningListRecentAnalysesQuery, userAgent, accept string) (*Request, error) {
	url, err := CodeScanningListRecentAnalysesURL(baseURL, owner, repo, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("code-scanning/list-recent-analyses", http.MethodGet, url, userAgent, accept, nil)
}

func (s CodeScanningService[R]) ListRecentAnalyses(ctx context.Context, owner, repo string, q *CodeScanningListRecentAnalysesQuery) (R, error) {
	cfg := s.c.config
	req, err := NewCodeScanningListRecentAnalysesRequest(cfg.BaseURL, owner, repo, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
