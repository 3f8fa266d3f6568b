package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type GitCreateTagTagger struct {
	Name                 string         `json:"name"`
	Email                string         `json:"email"`
	Date                 *string        `json:"date,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (t GitCreateTagTagger) MarshalJSON() ([]byte, error) {
	type plain GitCreateTagTagger
	return jsonext.Marshal(plain(t), t.AdditionalProperties)
}

func (t *GitCreateTagTagger) UnmarshalJSON(data []byte) error {
	type plain GitCreateTagTagger
	return jsonext.Unmarshal(data, (*plain)(t), &t.AdditionalProperties)
}

type GitCreateTagBody struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
	// Object is the SHA of the tagged git object.
	Object string `json:"object"`
	// Type is "commit", "tree" or "blob".
	Type                 string              `json:"type"`
	Tagger               *GitCreateTagTagger `json:"tagger,omitzero"`
	AdditionalProperties map[string]any      `json:"-"`
}

func (b GitCreateTagBody) MarshalJSON() ([]byte, error) {
	type plain GitCreateTagBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *GitCreateTagBody) UnmarshalJSON(data []byte) error {
	type plain GitCreateTagBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func GitCreateTagURL(baseURL, owner, repo string) (string, error) {
	u := newURLBuilder(baseURL).lit("/repos/").path(owner).lit("/").path(repo).lit("/git/tags")
	return finishURL("git/create-tag", u)
}

func NewGitCreateTagRequest(baseURL, owner, repo, userAgent, accept string, content *Content) (*Request, error) {
	url, err := GitCreateTagURL(baseURL, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewRequest("git/create-tag", http.MethodPost, url, userAgent, accept, content)
}

// CreateTag creates an annotated tag object. It does not create the
// refs/tags reference.
func (s GitService[R]) CreateTag(ctx context.Context, owner, repo string, body *GitCreateTagBody) (R, error) {
	content, err := s.c.jsonBody("git/create-tag", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewGitCreateTagRequest(cfg.BaseURL, owner, repo, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}

func GitGetCommitURL(baseURL, owner, repo, commitSHA string) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/repos/").path(owner).lit("/").path(repo).
		lit("/git/commits/").path(commitSHA)
	return finishURL("git/get-commit", u)
}

func NewGitGetCommitRequest(baseURL, owner, repo, commitSHA, userAgent, accept string) (*Request, error) {
	url, err := GitGetCommitURL(baseURL, owner, repo, commitSHA)
	if err != nil {
		return nil, err
	}
	return NewRequest("git/get-commit", http.MethodGet, url, userAgent, accept, nil)
}

func (s GitService[R]) GetCommit(ctx context.Context, owner, repo, commitSHA string) (R, error) {
	cfg := s.c.config
	req, err := NewGitGetCommitRequest(cfg.BaseURL, owner, repo, commitSHA, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
