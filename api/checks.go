package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

// CheckRunAnnotation points at a range of lines in a file. GitHub accepts
// at most 50 annotations per request.
type CheckRunAnnotation struct {
	Path      string `json:"path"`
	StartLine int64  `json:"start_line"`
	EndLine   int64  `json:"end_line"`
	// Columns are only honoured when StartLine equals EndLine.
	StartColumn *int64 `json:"start_column,omitzero"`
	EndColumn   *int64 `json:"end_column,omitzero"`
	// AnnotationLevel is "notice", "warning" or "failure".
	AnnotationLevel      string         `json:"annotation_level"`
	Message              string         `json:"message"`
	Title                *string        `json:"title,omitzero"`
	RawDetails           *string        `json:"raw_details,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (a CheckRunAnnotation) MarshalJSON() ([]byte, error) {
	type plain CheckRunAnnotation
	return jsonext.Marshal(plain(a), a.AdditionalProperties)
}

func (a *CheckRunAnnotation) UnmarshalJSON(data []byte) error {
	type plain CheckRunAnnotation
	return jsonext.Unmarshal(data, (*plain)(a), &a.AdditionalProperties)
}

type CheckRunImage struct {
	Alt                  string         `json:"alt"`
	ImageURL             string         `json:"image_url"`
	Caption              *string        `json:"caption,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (i CheckRunImage) MarshalJSON() ([]byte, error) {
	type plain CheckRunImage
	return jsonext.Marshal(plain(i), i.AdditionalProperties)
}

func (i *CheckRunImage) UnmarshalJSON(data []byte) error {
	type plain CheckRunImage
	return jsonext.Unmarshal(data, (*plain)(i), &i.AdditionalProperties)
}

// CheckRunAction is a button shown on the check run. Identifier is sent
// back in the check_run.requested_action webhook.
type CheckRunAction struct {
	Label                string         `json:"label"`
	Description          string         `json:"description"`
	Identifier           string         `json:"identifier"`
	AdditionalProperties map[string]any `json:"-"`
}

func (a CheckRunAction) MarshalJSON() ([]byte, error) {
	type plain CheckRunAction
	return jsonext.Marshal(plain(a), a.AdditionalProperties)
}

func (a *CheckRunAction) UnmarshalJSON(data []byte) error {
	type plain CheckRunAction
	return jsonext.Unmarshal(data, (*plain)(a), &a.AdditionalProperties)
}

type ChecksCreateOutput struct {
	Title                string               `json:"title"`
	Summary              string               `json:"summary"`
	Text                 *string              `json:"text,omitzero"`
	Annotations          []CheckRunAnnotation `json:"annotations,omitzero"`
	Images               []CheckRunImage      `json:"images,omitzero"`
	AdditionalProperties map[string]any       `json:"-"`
}

func (o ChecksCreateOutput) MarshalJSON() ([]byte, error) {
	type plain ChecksCreateOutput
	return jsonext.Marshal(plain(o), o.AdditionalProperties)
}

func (o *ChecksCreateOutput) UnmarshalJSON(data []byte) error {
	type plain ChecksCreateOutput
	return jsonext.Unmarshal(data, (*plain)(o), &o.AdditionalProperties)
}

type ChecksCreateBody struct {
	Name       string  `json:"name"`
	HeadSHA    string  `json:"head_sha"`
	DetailsURL *string `json:"details_url,omitzero"`
	ExternalID *string `json:"external_id,omitzero"`
	// Status is "queued", "in_progress" or "completed".
	Status    *string `json:"status,omitzero"`
	StartedAt *string `json:"started_at,omitzero"`
	// Conclusion is required when Status is "completed" or CompletedAt is set.
	Conclusion           *string             `json:"conclusion,omitzero"`
	CompletedAt          *string             `json:"completed_at,omitzero"`
	Output               *ChecksCreateOutput `json:"output,omitzero"`
	Actions              []CheckRunAction    `json:"actions,omitzero"`
	AdditionalProperties map[string]any      `json:"-"`
}

func (b ChecksCreateBody) MarshalJSON() ([]byte, error) {
	type plain ChecksCreateBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ChecksCreateBody) UnmarshalJSON(data []byte) error {
	type plain ChecksCreateBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ChecksCreateURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/check-runs")
	return finishURL("checks/create", u)
}

func NewChecksCreateRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ChecksCreateURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("checks/create", http.MethodPost, url, userAgent, accept, content)
}

// Create starts a check run. Only GitHub Apps may create check runs.
func (s ChecksService[R]) Create(ctx context.Context, owner, repo string, body *ChecksCreateBody) (R, error) {
	content, err := s.c.jsonBody("checks/create", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewChecksCreateRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

type ChecksUpdateOutput struct {
	Title                *string              `json:"title,omitzero"`
	Summary              string               `json:"summary"`
	Text                 *string              `json:"text,omitzero"`
	Annotations          []CheckRunAnnotation `json:"annotations,omitzero"`
	Images               []CheckRunImage      `json:"images,omitzero"`
	AdditionalProperties map[string]any       `json:"-"`
}

func (o ChecksUpdateOutput) MarshalJSON() ([]byte, error) {
	type plain ChecksUpdateOutput
	return jsonext.Marshal(plain(o), o.AdditionalProperties)
}

func (o *ChecksUpdateOutput) UnmarshalJSON(data []byte) error {
	type plain ChecksUpdateOutput
	return jsonext.Unmarshal(data, (*plain)(o), &o.AdditionalProperties)
}

type ChecksUpdateBody struct {
	Name                 *string             `json:"name,omitzero"`
	DetailsURL           *string             `json:"details_url,omitzero"`
	ExternalID           *string             `json:"external_id,omitzero"`
	StartedAt            *string             `json:"started_at,omitzero"`
	Status               *string             `json:"status,omitzero"`
	Conclusion           *string             `json:"conclusion,omitzero"`
	CompletedAt          *string             `json:"completed_at,omitzero"`
	Output               *ChecksUpdateOutput `json:"output,omitzero"`
	Actions              []CheckRunAction    `json:"actions,omitzero"`
	AdditionalProperties map[string]any      `json:"-"`
}

func (b ChecksUpdateBody) MarshalJSON() ([]byte, error) {
	type plain ChecksUpdateBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ChecksUpdateBody) UnmarshalJSON(data []byte) error {
	type plain ChecksUpdateBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ChecksUpdateURL(baseURL, owner, repo string, checkRunID int64) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/check-runs/").path(checkRunID)
	return finishURL("checks/update", u)
}

func NewChecksUpdateRequest(baseURL, owner, repo string, checkRunID int64, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ChecksUpdateURL(baseURL, owner, repo, checkRunID)
	if err != nil {
		return nil, err
	}
	return NewRequest("checks/update", http.MethodPatch, url, userAgent, accept, content)
}

func (s ChecksService[R]) Update(ctx context.Context, owner, repo string, checkRunID int64, body *ChecksUpdateBody) (R, error) {
	content, err := s.c.jsonBody("checks/update", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewChecksUpdateRequest(cfg.BaseURL, owner, repo, checkRunID, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
