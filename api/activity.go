package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

func ActivityGetFeedsURL(baseURL string) (string, error) {
	return finishURL("activity/get-feeds", newURLBuilder(baseURL).lit("/feeds"))
}

func NewActivityGetFeedsRequest(baseURL, userAgent, accept string) (*Request, error) {
	url, err := ActivityGetFeedsURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("activity/get-feeds", http.MethodGet, url, userAgent, accept, nil)
}

// GetFeeds lists the Atom feeds available to the authenticated user.
func (s ActivityService[R]) GetFeeds(ctx context.Context) (R, error) {
	cfg := s.c.config
	req, err := NewActivityGetFeedsRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type ActivityMarkNotificationsAsReadBody struct {
	// LastReadAt is an ISO 8601 timestamp; notifications updated after it
	// stay unread. Defaults to the current time on the server.
	LastReadAt           *string        `json:"last_read_at,omitzero"`
	Read                 *bool          `json:"read,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (b ActivityMarkNotificationsAsReadBody) MarshalJSON() ([]byte, error) {
	type plain ActivityMarkNotificationsAsReadBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *ActivityMarkNotificationsAsReadBody) UnmarshalJSON(data []byte) error {
	type plain ActivityMarkNotificationsAsReadBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func ActivityMarkNotificationsAsReadURL(baseURL string) (string, error) {
	return finishURL("activity/mark-notifications-as-read", newURLBuilder(baseURL).lit("/notifications"))
}

func NewActivityMarkNotificationsAsReadRequest(baseURL, userAgent, accept string, content *Content) (*Request, error) {
	url, err := ActivityMarkNotificationsAsReadURL(baseURL)
	if err != nil {
		return nil, err
	}
	return NewRequest("activity/mark-notifications-as-read", http.MethodPut, url, userAgent, accept, content)
}

func (s ActivityService[R]) MarkNotificationsAsRead(ctx context.Context, body *ActivityMarkNotificationsAsReadBody) (R, error) {
	content, err := s.c.jsonBody("activity/mark-notifications-as-read", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewActivityMarkNotificationsAsReadRequest(cfg.BaseURL, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
