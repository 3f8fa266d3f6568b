package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
	"github.com/octoglue/octoglue/api/schema"
)

type ReposCompareCommitsQuery struct {
	Page    *int64
	PerPage *int64
}

// ReposCompareCommitsURL builds the compare URL. basehead is
// "BASE...HEAD", optionally with "owner:" prefixes for forks.
func ReposCompareCommitsURL(baseURL, owner, repo, basehead string, q *ReposCompareCommitsQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/compare/").path(basehead)
	if q != nil {
		u.query("page", q.Page).query("per_page", q.PerPage)
	}
	return finishURL("repos/compare-commits", u)
}

func NewReposCompareCommitsRequest(baseURL, owner, repo, basehead string, q *ReposCompareCommitsQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposCompareCommitsURL(baseURL, owner, repo, basehead, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/compare-commits", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) CompareCommits(ctx context.Context, owner, repo, basehead string, q *ReposCompareCommitsQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposCompareCommitsRequest(cfg.BaseURL, owner, repo, basehead, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposCreateDeploymentBody struct {
	Ref                   string           `json:"ref"`
	Task                  *string          `json:"task,omitzero"`
	AutoMerge             *bool            `json:"auto_merge,omitzero"`
	RequiredContexts      []string         `json:"required_contexts,omitzero"`
	Payload               any              `json:"payload,omitzero"`
	Environment           *string          `json:"environment,omitzero"`
	Description           Nullable[string] `json:"description,omitzero"`
	TransientEnvironment  *bool            `json:"transient_environment,omitzero"`
	ProductionEnvironment *bool            `json:"production_environment,omitzero"`
	AdditionalProperties  map[string]any   `json:"-"`
}

func (b ReposCreateDeploymentBody) MarshalJSON() ([]byte, error) {
	type plain ReposCreateDeploymentBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposCreateDeploymentBody) UnmarshalJSON(data []byte) error {
	type plain ReposCreateDeploymentBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposCreateDeploymentURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/deployments")
	return finishURL("repos/create-deployment", u)
}

func NewReposCreateDeploymentRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposCreateDeploymentURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/create-deployment", http.MethodPost, url, userAgent, accept, content)
}

// CreateDeployment creates a deployment. An empty non-nil RequiredContexts
// skips commit status checks; nil checks every context.
func (s ReposService[R]) CreateDeployment(ctx context.Context, owner, repo string, body *ReposCreateDeploymentBody) (R, error) {
	content, err := s.c.jsonBody("repos/create-deployment", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposCreateDeploymentRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ReposCreateForAuthenticatedUserBody struct {
	Name                string  `json:"name"`
	Description         *string `json:"description,omitzero"`
	Homepage            *string `json:"homepage,omitzero"`
	Private             *bool   `json:"private,omitzero"`
	HasIssues           *bool   `json:"has_issues,omitzero"`
	HasProjects         *bool   `json:"has_projects,omitzero"`
	HasWiki             *bool   `json:"has_wiki,omitzero"`
	TeamID              *int64  `json:"team_id,omitzero"`
	AutoInit            *bool   `json:"auto_init,omitzero"`
	GitignoreTemplate   *string `json:"gitignore_template,omitzero"`
	LicenseTemplate     *string `json:"license_template,omitzero"`
	AllowSquashMerge    *bool   `json:"allow_squash_merge,omitzero"`
	AllowMergeCommit    *bool   `json:"allow_merge_commit,omitzero"`
	AllowRebaseMerge    *bool   `json:"allow_rebase_merge,omitzero"`
	AllowAutoMerge      *bool   `json:"allow_auto_merge,omitzero"`
	DeleteBranchOnMerge *bool   `json:"delete_branch_on_merge,omitzero"`
	HasDownloads        *bool   `json:"has_downloads,omitzero"`
	IsTemplate          *bool   `json:"is_template,omitzero"`

	AdditionalProperties map[string]any `json:"-"`
}

func (b ReposCreateForAuthenticatedUserBody) MarshalJSON() ([]byte, error) {
	type plain ReposCreateForAuthenticatedUserBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposCreateForAuthenticatedUserBody) UnmarshalJSON(data []byte) error {
	type plain ReposCreateForAuthenticatedUserBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposCreateForAuthenticatedUserURL(baseURL string) (string, error) {
	return finishURL("repos/create-for-authenticated-user", newURLBuilder(baseURL).lit("/user/repos"))
}

func NewReposCreateForAuthenticatedUserRequest(baseURL, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposCreateForAuthenticatedUserURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/create-for-authenticated-user", http.MethodPost, url, userAgent, accept, content)
}

func (s ReposService[R]) CreateForAuthenticatedUser(ctx context.Context, body *ReposCreateForAuthenticatedUserBody) (R, error) {
	content, err := s.c.jsonBody("repos/create-for-authenticated-user", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposCreateForAuthenticatedUserRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ReposCreateInOrgBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitzero"`
	Homepage    *string `json:"homepage,omitzero"`
	Private     *bool   `json:"private,omitzero"`
	// Visibility is "public", "private" or "internal".
	Visibility          *string `json:"visibility,omitzero"`
	HasIssues           *bool   `json:"has_issues,omitzero"`
	HasProjects         *bool   `json:"has_projects,omitzero"`
	HasWiki             *bool   `json:"has_wiki,omitzero"`
	IsTemplate          *bool   `json:"is_template,omitzero"`
	TeamID              *int64  `json:"team_id,omitzero"`
	AutoInit            *bool   `json:"auto_init,omitzero"`
	GitignoreTemplate   *string `json:"gitignore_template,omitzero"`
	LicenseTemplate     *string `json:"license_template,omitzero"`
	AllowSquashMerge    *bool   `json:"allow_squash_merge,omitzero"`
	AllowMergeCommit    *bool   `json:"allow_merge_commit,omitzero"`
	AllowRebaseMerge    *bool   `json:"allow_rebase_merge,omitzero"`
	AllowAutoMerge      *bool   `json:"allow_auto_merge,omitzero"`
	DeleteBranchOnMerge *bool   `json:"delete_branch_on_merge,omitzero"`

	AdditionalProperties map[string]any `json:"-"`
}

func (b ReposCreateInOrgBody) MarshalJSON() ([]byte, error) {
	type plain ReposCreateInOrgBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposCreateInOrgBody) UnmarshalJSON(data []byte) error {
	type plain ReposCreateInOrgBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposCreateInOrgURL(baseURL, org string) (string, error) {
	return finishURL("repos/create-in-org", newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/repos"))
}

func NewReposCreateInOrgRequest(baseURL, org, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposCreateInOrgURL(baseURL, org)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/create-in-org", http.MethodPost, url, userAgent, accept, content)
}

func (s ReposService[R]) CreateInOrg(ctx context.Context, org string, body *ReposCreateInOrgBody) (R, error) {
	content, err := s.c.jsonBody("repos/create-in-org", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposCreateInOrgRequest(cfg.BaseURL, org, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ReposCreateOrUpdateEnvironmentReviewer struct {
	// Type is "User" or "Team".
	Type                 *string        `json:"type,omitzero"`
	ID                   *int64         `json:"id,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (r ReposCreateOrUpdateEnvironmentReviewer) MarshalJSON() ([]byte, error) {
	type plain ReposCreateOrUpdateEnvironmentReviewer
	return jsonext.Marshal(plain(r), r.AdditionalProperties)
}

func (r *ReposCreateOrUpdateEnvironmentReviewer) UnmarshalJSON(data []byte) error {
	type plain ReposCreateOrUpdateEnvironmentReviewer
	return jsonext.Unmarshal(data, (*plain)(r), &r.AdditionalProperties)
}

type ReposCreateOrUpdateEnvironmentBody struct {
	// WaitTimer is in minutes, 0 to 43200.
	WaitTimer              *int64                                             `json:"wait_timer,omitzero"`
	Reviewers              Nullable[[]ReposCreateOrUpdateEnvironmentReviewer] `json:"reviewers,omitzero"`
	DeploymentBranchPolicy Nullable[schema.DeploymentBranchPolicy]            `json:"deployment_branch_policy,omitzero"`
	AdditionalProperties   map[string]any                                     `json:"-"`
}

func (b ReposCreateOrUpdateEnvironmentBody) MarshalJSON() ([]byte, error) {
	type plain ReposCreateOrUpdateEnvironmentBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposCreateOrUpdateEnvironmentBody) UnmarshalJSON(data []byte) error {
	type plain ReposCreateOrUpdateEnvironmentBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposCreateOrUpdateEnvironmentURL(baseURL, owner, repo, environmentName string) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/environments/").path(environmentName)
	return finishURL("repos/create-or-update-environment", u)
}

func NewReposCreateOrUpdateEnvironmentRequest(baseURL, owner, repo, environmentName, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposCreateOrUpdateEnvironmentURL(baseURL, owner, repo, environmentName)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/create-or-update-environment", http.MethodPut, url, userAgent, accept, content)
}

// CreateOrUpdateEnvironment creates an environment or updates its
// protection rules. A nil body is allowed and creates an environment
// without rules.
func (s ReposService[R]) CreateOrUpdateEnvironment(ctx context.Context, owner, repo, environmentName string, body *ReposCreateOrUpdateEnvironmentBody) (R, error) {
	content, err := s.c.jsonBody("repos/create-or-update-environment", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposCreateOrUpdateEnvironmentRequest(cfg.BaseURL, owner, repo, environmentName, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ReposGetContentQuery struct {
	Ref *string
}

// ReposGetContentURL builds the contents URL. path is a single parameter,
// so slashes inside it are percent-encoded like any other reserved byte.
func ReposGetContentURL(baseURL, owner, repo, path string, q *ReposGetContentQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/contents/").path(path)
	if q != nil {
		u.query("ref", q.Ref)
	}
	return finishURL("repos/get-content", u)
}

func NewReposGetContentRequest(baseURL, owner, repo, path string, q *ReposGetContentQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposGetContentURL(baseURL, owner, repo, path, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/get-content", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) GetContent(ctx context.Context, owner, repo, path string, q *ReposGetContentQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposGetContentRequest(cfg.BaseURL, owner, repo, path, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposGetReadmeInDirectoryQuery struct {
	Ref *string
}

func ReposGetReadmeInDirectoryURL(baseURL, owner, repo, dir string, q *ReposGetReadmeInDirectoryQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/readme/").path(dir)
	if q != nil {
		u.query("ref", q.Ref)
	}
	return finishURL("repos/get-readme-in-directory", u)
}

func NewReposGetReadmeInDirectoryRequest(baseURL, owner, repo, dir string, q *ReposGetReadmeInDirectoryQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposGetReadmeInDirectoryURL(baseURL, owner, repo, dir, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/get-readme-in-directory", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) GetReadmeInDirectory(ctx context.Context, owner, repo, dir string, q *ReposGetReadmeInDirectoryQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposGetReadmeInDirectoryRequest(cfg.BaseURL, owner, repo, dir, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposListCommitsQuery struct {
	SHA     *string
	Path    *string
	Author  *string
	Since   *string
	Until   *string
	PerPage *int64
	Page    *int64
}

func ReposListCommitsURL(baseURL, owner, repo string, q *ReposListCommitsQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/commits")
	if q != nil {
		u.query("sha", q.SHA).
			query("path", q.Path).
			query("author", q.Author).
			query("since", q.Since).
			query("until", q.Until).
			query("per_page", q.PerPage).
			query("page", q.Page)
	}
	return finishURL("repos/list-commits", u)
}

func NewReposListCommitsRequest(baseURL, owner, repo string, q *ReposListCommitsQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposListCommitsURL(baseURL, owner, repo, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/list-commits", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) ListCommits(ctx context.Context, owner, repo string, q *ReposListCommitsQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposListCommitsRequest(cfg.BaseURL, owner, repo, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposListForAuthenticatedUserQuery struct {
	Visibility *string
	// Affiliation is a comma separated list of "owner", "collaborator"
	// and "organization_member".
	Affiliation *string
	// Type cannot be combined with Visibility or Affiliation.
	Type      *string
	Sort      *string
	Direction *string
	PerPage   *int64
	Page      *int64
	Since     *string
	Before    *string
}

// SetSort fills Sort and Direction from s.
func (q *ReposListForAuthenticatedUserQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

func ReposListForAuthenticatedUserURL(baseURL string, q *ReposListForAuthenticatedUserQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/user/repos")
	if q != nil {
		u.query("visibility", q.Visibility).
			query("affiliation", q.Affiliation).
			query("type", q.Type).
			query("sort", q.Sort).
			query("direction", q.Direction).
			query("per_page", q.PerPage).
			query("page", q.Page).
			query("since", q.Since).
			query("before", q.Before)
	}
	return finishURL("repos/list-for-authenticated-user", u)
}

func NewReposListForAuthenticatedUserRequest(baseURL string, q *ReposListForAuthenticatedUserQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposListForAuthenticatedUserURL(baseURL, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/list-for-authenticated-user", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) ListForAuthenticatedUser(ctx context.Context, q *ReposListForAuthenticatedUserQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposListForAuthenticatedUserRequest(cfg.BaseURL, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposListForUserQuery struct {
	// Type is "all", "owner" or "member".
	Type      *string
	Sort      *string
	Direction *string
	PerPage   *int64
	Page      *int64
}

// SetSort fills Sort and Direction from s.
func (q *ReposListForUserQuery) SetSort(s Sort) {
	q.Sort, q.Direction = s.Extract()
}

// ReposListForUserURL builds the URL listing the public repositories of
// username.
func ReposListForUserURL(baseURL, username string, q *ReposListForUserQuery) (string, error) {
	u := newURLBuilder(baseURL).lit("/users/").path(username).lit("/repos")
	if q != nil {
		u.query("type", q.Type).
			query("sort", q.Sort).
			query("direction", q.Direction).
			query("per_page", q.PerPage).
			query("page", q.Page)
	}
	return finishURL("repos/list-for-user", u)
}

func NewReposListForUserRequest(baseURL, username string, q *ReposListForUserQuery, userAgent, accept string) (*Request, error) {
	url, err := ReposListForUserURL(baseURL, username, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/list-for-user", http.MethodGet, url, userAgent, accept, nil)
}

func (s ReposService[R]) ListForUser(ctx context.Context, username string, q *ReposListForUserQuery) (R, error) {
	cfg := s.c.config
	req, err := NewReposListForUserRequest(cfg.BaseURL, username, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

func ReposGetLatestReleaseURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/releases/latest")
	return finishURL("repos/get-latest-release", u)
}

func NewReposGetLatestReleaseRequest(baseURL, owner, repo, userAgent, accept string) (*Request, error) {
	url, err := ReposGetLatestReleaseURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/get-latest-release", http.MethodGet, url, userAgent, accept, nil)
}

// GetLatestRelease returns the most recent published, non-prerelease,
// non-draft release.
func (s ReposService[R]) GetLatestRelease(ctx context.Context, owner, repo string) (R, error) {
	cfg := s.c.config
	req, err := NewReposGetLatestReleaseRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ReposUpdateSecurityAndAnalysisSetting struct {
	// Status is "enabled" or "disabled".
	Status               *string        `json:"status,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (s ReposUpdateSecurityAndAnalysisSetting) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateSecurityAndAnalysisSetting
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *ReposUpdateSecurityAndAnalysisSetting) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateSecurityAndAnalysisSetting
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

type ReposUpdateSecurityAndAnalysis struct {
	AdvancedSecurity             *ReposUpdateSecurityAndAnalysisSetting `json:"advanced_security,omitzero"`
	SecretScanning               *ReposUpdateSecurityAndAnalysisSetting `json:"secret_scanning,omitzero"`
	SecretScanningPushProtection *ReposUpdateSecurityAndAnalysisSetting `json:"secret_scanning_push_protection,omitzero"`
	AdditionalProperties         map[string]any                         `json:"-"`
}

func (s ReposUpdateSecurityAndAnalysis) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateSecurityAndAnalysis
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *ReposUpdateSecurityAndAnalysis) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateSecurityAndAnalysis
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

type ReposUpdateBody struct {
	Name        *string `json:"name,omitzero"`
	Description *string `json:"description,omitzero"`
	Homepage    *string `json:"homepage,omitzero"`
	Private     *bool   `json:"private,omitzero"`
	Visibility  *string `json:"visibility,omitzero"`
	// SecurityAndAnalysis set to null leaves every feature unchanged.
	SecurityAndAnalysis Nullable[ReposUpdateSecurityAndAnalysis] `json:"security_and_analysis,omitzero"`
	HasIssues           *bool                                    `json:"has_issues,omitzero"`
	HasProjects         *bool                                    `json:"has_projects,omitzero"`
	HasWiki             *bool                                    `json:"has_wiki,omitzero"`
	IsTemplate          *bool                                    `json:"is_template,omitzero"`
	DefaultBranch       *string                                  `json:"default_branch,omitzero"`
	AllowSquashMerge    *bool                                    `json:"allow_squash_merge,omitzero"`
	AllowMergeCommit    *bool                                    `json:"allow_merge_commit,omitzero"`
	AllowRebaseMerge    *bool                                    `json:"allow_rebase_merge,omitzero"`
	AllowAutoMerge      *bool                                    `json:"allow_auto_merge,omitzero"`
	DeleteBranchOnMerge *bool                                    `json:"delete_branch_on_merge,omitzero"`
	AllowUpdateBranch   *bool                                    `json:"allow_update_branch,omitzero"`
	Archived            *bool                                    `json:"archived,omitzero"`
	AllowForking        *bool                                    `json:"allow_forking,omitzero"`

	AdditionalProperties map[string]any `json:"-"`
}

func (b ReposUpdateBody) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposUpdateBody) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposUpdateURL(baseURL, owner, repo string) (string, error) {
	return finishURL("repos/update", newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo))
}

func NewReposUpdateRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposUpdateURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/update", http.MethodPatch, url, userAgent, accept, content)
}

func (s ReposService[R]) Update(ctx context.Context, owner, repo string, body *ReposUpdateBody) (R, error) {
	content, err := s.c.jsonBody("repos/update", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposUpdateRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ReposUpdateBranchProtectionCheck struct {
	Context string `json:"context"`
	// AppID restricts the check to one GitHub App; -1 accepts any source.
	AppID                *int64         `json:"app_id,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (c ReposUpdateBranchProtectionCheck) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionCheck
	return jsonext.Marshal(plain(c), c.AdditionalProperties)
}

func (c *ReposUpdateBranchProtectionCheck) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionCheck
	return jsonext.Unmarshal(data, (*plain)(c), &c.AdditionalProperties)
}

type ReposUpdateBranchProtectionRequiredStatusChecks struct {
	Strict bool `json:"strict"`
	// Contexts is deprecated in favour of Checks but still required.
	Contexts             []string                           `json:"contexts"`
	Checks               []ReposUpdateBranchProtectionCheck `json:"checks,omitzero"`
	AdditionalProperties map[string]any                     `json:"-"`
}

func (c ReposUpdateBranchProtectionRequiredStatusChecks) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionRequiredStatusChecks
	return jsonext.Marshal(plain(c), c.AdditionalProperties)
}

func (c *ReposUpdateBranchProtectionRequiredStatusChecks) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionRequiredStatusChecks
	return jsonext.Unmarshal(data, (*plain)(c), &c.AdditionalProperties)
}

// ReposUpdateBranchProtectionActors lists users and teams, by login and
// slug, allowed to dismiss reviews or bypass pull request requirements.
type ReposUpdateBranchProtectionActors struct {
	Users                []string       `json:"users,omitzero"`
	Teams                []string       `json:"teams,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (a ReposUpdateBranchProtectionActors) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionActors
	return jsonext.Marshal(plain(a), a.AdditionalProperties)
}

func (a *ReposUpdateBranchProtectionActors) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionActors
	return jsonext.Unmarshal(data, (*plain)(a), &a.AdditionalProperties)
}

type ReposUpdateBranchProtectionRequiredPullRequestReviews struct {
	DismissalRestrictions        *ReposUpdateBranchProtectionActors `json:"dismissal_restrictions,omitzero"`
	DismissStaleReviews          *bool                              `json:"dismiss_stale_reviews,omitzero"`
	RequireCodeOwnerReviews      *bool                              `json:"require_code_owner_reviews,omitzero"`
	RequiredApprovingReviewCount *int64                             `json:"required_approving_review_count,omitzero"`
	BypassPullRequestAllowances  *ReposUpdateBranchProtectionActors `json:"bypass_pull_request_allowances,omitzero"`
	AdditionalProperties         map[string]any                     `json:"-"`
}

func (r ReposUpdateBranchProtectionRequiredPullRequestReviews) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionRequiredPullRequestReviews
	return jsonext.Marshal(plain(r), r.AdditionalProperties)
}

func (r *ReposUpdateBranchProtectionRequiredPullRequestReviews) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionRequiredPullRequestReviews
	return jsonext.Unmarshal(data, (*plain)(r), &r.AdditionalProperties)
}

type ReposUpdateBranchProtectionRestrictions struct {
	Users                []string       `json:"users"`
	Teams                []string       `json:"teams"`
	Apps                 []string       `json:"apps,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (r ReposUpdateBranchProtectionRestrictions) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionRestrictions
	return jsonext.Marshal(plain(r), r.AdditionalProperties)
}

func (r *ReposUpdateBranchProtectionRestrictions) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionRestrictions
	return jsonext.Unmarshal(data, (*plain)(r), &r.AdditionalProperties)
}

// ReposUpdateBranchProtectionBody replaces the protection of a branch.
// The first four members are required but nullable: a nil pointer is
// sent as null and disables that protection.
type ReposUpdateBranchProtectionBody struct {
	RequiredStatusChecks           *ReposUpdateBranchProtectionRequiredStatusChecks       `json:"required_status_checks"`
	EnforceAdmins                  *bool                                                  `json:"enforce_admins"`
	RequiredPullRequestReviews     *ReposUpdateBranchProtectionRequiredPullRequestReviews `json:"required_pull_request_reviews"`
	Restrictions                   *ReposUpdateBranchProtectionRestrictions               `json:"restrictions"`
	RequiredLinearHistory          *bool                                                  `json:"required_linear_history,omitzero"`
	AllowForcePushes               Nullable[bool]                                         `json:"allow_force_pushes,omitzero"`
	AllowDeletions                 *bool                                                  `json:"allow_deletions,omitzero"`
	BlockCreations                 *bool                                                  `json:"block_creations,omitzero"`
	RequiredConversationResolution *bool                                                  `json:"required_conversation_resolution,omitzero"`
	AdditionalProperties           map[string]any                                         `json:"-"`
}

func (b ReposUpdateBranchProtectionBody) MarshalJSON() ([]byte, error) {
	type plain ReposUpdateBranchProtectionBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ReposUpdateBranchProtectionBody) UnmarshalJSON(data []byte) error {
	type plain ReposUpdateBranchProtectionBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ReposUpdateBranchProtectionURL(baseURL, owner, repo, branch string) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/branches/").path(branch).lit("/protection")
	return finishURL("repos/update-branch-protection", u)
}

func NewReposUpdateBranchProtectionRequest(baseURL, owner, repo, branch, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ReposUpdateBranchProtectionURL(baseURL, owner, repo, branch)
	if err != nil {
		return nil, err
	}
	return NewRequest("repos/update-branch-protection", http.MethodPut, url, userAgent, accept, content)
}

func (s ReposService[R]) UpdateBranchProtection(ctx context.Context, owner, repo, branch string, body *ReposUpdateBranchProtectionBody) (R, error) {
	content, err := s.c.jsonBody("repos/update-branch-protection", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewReposUpdateBranchProtectionRequest(cfg.BaseURL, owner, repo, branch, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
