package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

// ActionsCreateOrUpdateEnvironmentSecretBody is the body of
// actions/create-or-update-environment-secret. EncryptedValue must be
// sealed with the environment's public key identified by KeyID.
type ActionsCreateOrUpdateEnvironmentSecretBody struct {
	EncryptedValue       string         `json:"encrypted_value"`
	KeyID                string         `json:"key_id"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b ActionsCreateOrUpdateEnvironmentSecretBody) MarshalJSON() ([]byte, error) {
	type plain ActionsCreateOrUpdateEnvironmentSecretBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ActionsCreateOrUpdateEnvironmentSecretBody) UnmarshalJSON(data []byte) error {
	type plain ActionsCreateOrUpdateEnvironmentSecretBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ActionsCreateOrUpdateEnvironmentSecretURL(baseURL string, repositoryID int64, environmentName, secretName string) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repositories/").path(repositoryID).
		lit("/environments/").path(environmentName).
		lit("/secrets/").path(secretName)
	return finishURL("actions/create-or-update-environment-secret", u)
}

func NewActionsCreateOrUpdateEnvironmentSecretRequest(baseURL string, repositoryID int64, environmentName, secretName, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ActionsCreateOrUpdateEnvironmentSecretURL(baseURL, repositoryID, environmentName, secretName)
	if err != nil {
		return nil, err
	}
	return NewRequest("actions/create-or-update-environment-secret", http.MethodPut, url, userAgent, accept, content)
}

// CreateOrUpdateEnvironmentSecret creates or updates an environment secret.
func (s ActionsService[R]) CreateOrUpdateEnvironmentSecret(ctx context.Context, repositoryID int64, environmentName, secretName string, body *ActionsCreateOrUpdateEnvironmentSecretBody) (R, error) {
	content, err := s.c.jsonBody("actions/create-or-update-environment-secret", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewActionsCreateOrUpdateEnvironmentSecretRequest(cfg.BaseURL, repositoryID, environmentName, secretName, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ActionsCreateSelfHostedRunnerGroupForOrgBody struct {
	Name string `json:"name"`
	// Visibility is one of "selected", "all" or "private".
	Visibility               *string        `json:"visibility,omitzero"`
	SelectedRepositoryIDs    []int64        `json:"selected_repository_ids,omitzero"`
	Runners                  []int64        `json:"runners,omitzero"`
	AllowsPublicRepositories *bool          `json:"allows_public_repositories,omitzero"`
	RestrictedToWorkflows    *bool          `json:"restricted_to_workflows,omitzero"`
	SelectedWorkflows        []string       `json:"selected_workflows,omitzero"`
	AdditionalProperties     map[string]any `json:"-"`
}

func (b ActionsCreateSelfHostedRunnerGroupForOrgBody) MarshalJSON() ([]byte, error) {
	type plain ActionsCreateSelfHostedRunnerGroupForOrgBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ActionsCreateSelfHostedRunnerGroupForOrgBody) UnmarshalJSON(data []byte) error {
	type plain ActionsCreateSelfHostedRunnerGroupForOrgBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ActionsCreateSelfHostedRunnerGroupForOrgURL(baseURL, org string) (string, error) {
	u := newURLBuilder(baseURL).lit("/orgs/").path(org).lit("/actions/runner-groups")
	return finishURL("actions/create-self-hosted-runner-group-for-org", u)
}

func NewActionsCreateSelfHostedRunnerGroupForOrgRequest(baseURL, org, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ActionsCreateSelfHostedRunnerGroupForOrgURL(baseURL, org)
	if err != nil {
		return nil, err
	}
	return NewRequest("actions/create-self-hosted-runner-group-for-org", http.MethodPost, url, userAgent, accept, content)
}

func (s ActionsService[R]) CreateSelfHostedRunnerGroupForOrg(ctx context.Context, org string, body *ActionsCreateSelfHostedRunnerGroupForOrgBody) (R, error) {
	content, err := s.c.jsonBody("actions/create-self-hosted-runner-group-for-org", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewActionsCreateSelfHostedRunnerGroupForOrgRequest(cfg.BaseURL, org, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

// ActionsListWorkflowRunsQuery holds the optional query parameters of
// actions/list-workflow-runs in the order they are sent.
type ActionsListWorkflowRunsQuery struct {
	Actor               *string
	Branch              *string
	Event               *string
	Status              *string
	PerPage             *int64
	Page                *int64
	Created             *string
	ExcludePullRequests *bool
	CheckSuiteID        *int64
}

// ActionsListWorkflowRunsURL builds the runs URL of a workflow. workflowID
// is either the numeric id or the workflow file name, e.g. "main.yaml".
func ActionsListWorkflowRunsURL(baseURL, owner, repo string, workflowID any, q *ActionsListWorkflowRunsQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/actions/workflows/").path(workflowID).lit("/runs")
	if q != nil {
		u.query("actor", q.Actor).
			query("branch", q.Branch).
			query("event", q.Event).
			query("status", q.Status).
			query("per_page", q.PerPage).
			query("page", q.Page).
			query("created", q.Created).
			query("exclude_pull_requests", q.ExcludePullRequests).
			query("check_suite_id", q.CheckSuiteID)
	}
	return finishURL("actions/list-workflow-runs", u)
}

func NewActionsListWorkflowRunsRequest(baseURL, owner, repo string, workflowID any, q *ActionsListWorkflowRunsQuery, userAgent, accept string) (*Request, error) {
	url, err := ActionsListWorkflowRunsURL(baseURL, owner, repo, workflowID, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("actions/list-workflow-runs", http.MethodGet, url, userAgent, accept, nil)
}

func (s ActionsService[R]) ListWorkflowRuns(ctx context.Context, owner, repo string, workflowID any, q *ActionsListWorkflowRunsQuery) (R, error) {
	cfg := s.c.config
	req, err := NewActionsListWorkflowRunsRequest(cfg.BaseURL, owner, repo, workflowID, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
