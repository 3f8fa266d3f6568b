package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type MigrationsUpdateImportBody struct {
	VCSUsername *string `json:"vcs_username,omitzero"`
	VCSPassword *string `json:"vcs_password,omitzero"`
	// VCS is "subversion", "tfvc", "git" or "mercurial".
	VCS                  *string        `json:"vcs,omitzero"`
	TFVCProject          *string        `json:"tfvc_project,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b MigrationsUpdateImportBody) MarshalJSON() ([]byte, error) {
	type plain MigrationsUpdateImportBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *MigrationsUpdateImportBody) UnmarshalJSON(data []byte) error {
	type plain MigrationsUpdateImportBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func MigrationsUpdateImportURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/import")
	return finishURL("migrations/update-import", u)
}

func NewMigrationsUpdateImportRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := MigrationsUpdateImportURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("migrations/update-import", http.MethodPatch, url, userAgent, accept, content)
}

func (s MigrationsService[R]) UpdateImport(ctx context.Context, owner, repo string, body *MigrationsUpdateImportBody) (R, error) {
	content, err := s.c.jsonBody("migrations/update-import", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewMigrationsUpdateImportRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
