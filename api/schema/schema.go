// Package schema holds named component schemas shared by several
// operations. Each type keeps JSON members it does not declare in
// AdditionalProperties.
package schema

import "github.com/octoglue/octoglue/api/jsonext"

// ActionsSetDefaultWorkflowPermissions sets the GITHUB_TOKEN permissions
// workflows get by default.
type ActionsSetDefaultWorkflowPermissions struct {
	// DefaultWorkflowPermissions is "read" or "write".
	DefaultWorkflowPermissions   *string        `json:"default_workflow_permissions,omitzero"`
	CanApprovePullRequestReviews *bool          `json:"can_approve_pull_request_reviews,omitzero"`
	AdditionalProperties         map[string]any `json:"-"`
}

func (s ActionsSetDefaultWorkflowPermissions) MarshalJSON() ([]byte, error) {
	type plain ActionsSetDefaultWorkflowPermissions
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *ActionsSetDefaultWorkflowPermissions) UnmarshalJSON(data []byte) error {
	type plain ActionsSetDefaultWorkflowPermissions
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

type ActionsWorkflowAccessToRepository struct {
	// AccessLevel is "none", "organization" or "enterprise".
	AccessLevel          string         `json:"access_level"`
	AdditionalProperties map[string]any `json:"-"`
}

func (s ActionsWorkflowAccessToRepository) MarshalJSON() ([]byte, error) {
	type plain ActionsWorkflowAccessToRepository
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *ActionsWorkflowAccessToRepository) UnmarshalJSON(data []byte) error {
	type plain ActionsWorkflowAccessToRepository
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

// AppPermissions lists the permissions a GitHub App requests. Every value
// is "read" or "write" (a few also accept "admin").
type AppPermissions struct {
	Actions                       *string `json:"actions,omitzero"`
	Administration                *string `json:"administration,omitzero"`
	Checks                        *string `json:"checks,omitzero"`
	Contents                      *string `json:"contents,omitzero"`
	Deployments                   *string `json:"deployments,omitzero"`
	Environments                  *string `json:"environments,omitzero"`
	Issues                        *string `json:"issues,omitzero"`
	Metadata                      *string `json:"metadata,omitzero"`
	Packages                      *string `json:"packages,omitzero"`
	Pages                         *string `json:"pages,omitzero"`
	PullRequests                  *string `json:"pull_requests,omitzero"`
	RepositoryHooks               *string `json:"repository_hooks,omitzero"`
	RepositoryProjects            *string `json:"repository_projects,omitzero"`
	SecretScanningAlerts          *string `json:"secret_scanning_alerts,omitzero"`
	Secrets                       *string `json:"secrets,omitzero"`
	SecurityEvents                *string `json:"security_events,omitzero"`
	SingleFile                    *string `json:"single_file,omitzero"`
	Statuses                      *string `json:"statuses,omitzero"`
	VulnerabilityAlerts           *string `json:"vulnerability_alerts,omitzero"`
	Workflows                     *string `json:"workflows,omitzero"`
	Members                       *string `json:"members,omitzero"`
	OrganizationAdministration    *string `json:"organization_administration,omitzero"`
	OrganizationHooks             *string `json:"organization_hooks,omitzero"`
	OrganizationPlan              *string `json:"organization_plan,omitzero"`
	OrganizationProjects          *string `json:"organization_projects,omitzero"`
	OrganizationPackages          *string `json:"organization_packages,omitzero"`
	OrganizationSecrets           *string `json:"organization_secrets,omitzero"`
	OrganizationSelfHostedRunners *string `json:"organization_self_hosted_runners,omitzero"`
	OrganizationUserBlocking      *string `json:"organization_user_blocking,omitzero"`
	TeamDiscussions               *string `json:"team_discussions,omitzero"`

	AdditionalProperties map[string]any `json:"-"`
}

func (s AppPermissions) MarshalJSON() ([]byte, error) {
	type plain AppPermissions
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *AppPermissions) UnmarshalJSON(data []byte) error {
	type plain AppPermissions
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

// DeploymentBranchPolicy restricts which branches can deploy to an
// environment. Exactly one of the two flags may be true.
type DeploymentBranchPolicy struct {
	ProtectedBranches    bool           `json:"protected_branches"`
	CustomBranchPolicies bool           `json:"custom_branch_policies"`
	AdditionalProperties map[string]any `json:"-"`
}

func (s DeploymentBranchPolicy) MarshalJSON() ([]byte, error) {
	type plain DeploymentBranchPolicy
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *DeploymentBranchPolicy) UnmarshalJSON(data []byte) error {
	type plain DeploymentBranchPolicy
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

type InteractionLimit struct {
	// Limit is "existing_users", "contributors_only" or "collaborators_only".
	Limit string `json:"limit"`
	// Expiry is "one_day", "three_days", "one_week", "one_month" or "six_months".
	Expiry               *string        `json:"expiry,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (s InteractionLimit) MarshalJSON() ([]byte, error) {
	type plain InteractionLimit
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *InteractionLimit) UnmarshalJSON(data []byte) error {
	type plain InteractionLimit
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}

type SelectedActions struct {
	GithubOwnedAllowed   *bool          `json:"github_owned_allowed,omitzero"`
	VerifiedAllowed      *bool          `json:"verified_allowed,omitzero"`
	PatternsAllowed      []string       `json:"patterns_allowed,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (s SelectedActions) MarshalJSON() ([]byte, error) {
	type plain SelectedActions
	return jsonext.Marshal(plain(s), s.AdditionalProperties)
}

func (s *SelectedActions) UnmarshalJSON(data []byte) error {
	type plain SelectedActions
	return jsonext.Unmarshal(data, (*plain)(s), &s.AdditionalProperties)
}
