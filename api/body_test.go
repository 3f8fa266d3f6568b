package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoglue/octoglue/api/schema"
)

func TestNullableTriState(t *testing.T) {
	tests := []struct {
		name     string
		body     TeamsUpdateInOrgBody
		expected string
	}{
		{"absent", TeamsUpdateInOrgBody{Name: String("core")}, `{"name":"core"}`},
		{"null", TeamsUpdateInOrgBody{ParentTeamID: Null[int64]()}, `{"parent_team_id":null}`},
		{"value", TeamsUpdateInOrgBody{ParentTeamID: NullableOf[int64](12)}, `{"parent_team_id":12}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestNullableDecode(t *testing.T) {
	var absent, null, value TeamsUpdateInOrgBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"parent_team_id":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"parent_team_id":5}`), &value))

	assert.True(t, absent.ParentTeamID.IsZero())
	assert.False(t, absent.ParentTeamID.IsNull())

	assert.True(t, null.ParentTeamID.IsNull())
	_, ok := null.ParentTeamID.Get()
	assert.False(t, ok)

	v, ok := value.ParentTeamID.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)
}

func TestIssuesCreateBodyExtensionRoundTrip(t *testing.T) {
	input := `{
		"title": "Found a bug",
		"body": "steps",
		"assignee": null,
		"milestone": 3,
		"labels": ["bug", {"name": "triage"}],
		"type": "Bug",
		"issue_field_values": {"priority": 1}
	}`

	var body IssuesCreateBody
	require.NoError(t, json.Unmarshal([]byte(input), &body))

	assert.Equal(t, "Found a bug", body.Title)
	assert.True(t, body.Assignee.IsNull())
	milestone, ok := body.Milestone.Get()
	require.True(t, ok)
	assert.Equal(t, float64(3), milestone)
	assert.Len(t, body.Labels, 2)
	assert.Equal(t, "Bug", body.AdditionalProperties["type"])
	assert.Contains(t, body.AdditionalProperties, "issue_field_values")
	assert.NotContains(t, body.AdditionalProperties, "title")

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestIssuesCreateBodyKeepsCaseVariantMember(t *testing.T) {
	input := `{"title":"a","Title":"b"}`

	var body IssuesCreateBody
	require.NoError(t, json.Unmarshal([]byte(input), &body))

	assert.Equal(t, "a", body.Title)
	assert.Equal(t, map[string]any{"Title": "b"}, body.AdditionalProperties)

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDeclaredFieldWinsOverExtension(t *testing.T) {
	body := MarkdownRenderBody{
		Text:                 "# hi",
		AdditionalProperties: map[string]any{"text": "ignored", "extra": true},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"# hi","extra":true}`, string(data))
}

func TestBranchProtectionRequiredNullableMembers(t *testing.T) {
	body := ReposUpdateBranchProtectionBody{
		EnforceAdmins:    Bool(true),
		AllowForcePushes: Null[bool](),
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"required_status_checks": null,
		"enforce_admins": true,
		"required_pull_request_reviews": null,
		"restrictions": null,
		"allow_force_pushes": null
	}`, string(data))
}

func TestEnvironmentBodyNestedSchema(t *testing.T) {
	body := ReposCreateOrUpdateEnvironmentBody{
		WaitTimer: Int64(30),
		Reviewers: NullableOf([]ReposCreateOrUpdateEnvironmentReviewer{
			{Type: String("Team"), ID: Int64(1)},
		}),
		DeploymentBranchPolicy: NullableOf(schema.DeploymentBranchPolicy{ProtectedBranches: true}),
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"wait_timer": 30,
		"reviewers": [{"type": "Team", "id": 1}],
		"deployment_branch_policy": {"protected_branches": true, "custom_branch_policies": false}
	}`, string(data))

	var decoded ReposCreateOrUpdateEnvironmentBody
	require.NoError(t, json.Unmarshal([]byte(`{"deployment_branch_policy":null}`), &decoded))
	assert.True(t, decoded.DeploymentBranchPolicy.IsNull())
	assert.True(t, decoded.Reviewers.IsZero())
}

func TestRequiredContextsEmptyIsSent(t *testing.T) {
	data, err := json.Marshal(ReposCreateDeploymentBody{Ref: "main", RequiredContexts: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref":"main","required_contexts":[]}`, string(data))

	data, err = json.Marshal(ReposCreateDeploymentBody{Ref: "main"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref":"main"}`, string(data))
}
