package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type MarkdownRenderBody struct {
	Text string `json:"text"`
	// Mode is "markdown" or "gfm".
	Mode *string `json:"mode,omitzero"`
	// Context is the owner/repo used to resolve references in gfm mode.
	Context              *string        `json:"context,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b MarkdownRenderBody) MarshalJSON() ([]byte, error) {
	type plain MarkdownRenderBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *MarkdownRenderBody) UnmarshalJSON(data []byte) error {
	type plain MarkdownRenderBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func MarkdownRenderURL(baseURL string) (string, error) {
	return finishURL("markdown/render", newURLBuilder(baseURL).lit("/markdown"))
}

func NewMarkdownRenderRequest(baseURL, userAgent, accept string, content *Content) (*Request, error) {
	url, err := MarkdownRenderURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("markdown/render", http.MethodPost, url, userAgent, accept, content)
}

// Render converts a markdown document to HTML. The response body is
// text/html.
func (s MarkdownService[R]) Render(ctx context.Context, body *MarkdownRenderBody) (R, error) {
	content, err := s.c.jsonBody("markdown/render", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewMarkdownRenderRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
