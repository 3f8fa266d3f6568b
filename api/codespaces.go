package api

import (
	"context"
	"net/http"

	"github.com/octoglue/octoglue/api/jsonext"
)

type CodespacesCreateOrUpdateSecretForAuthenticatedUserBody struct {
	EncryptedValue *string `json:"encrypted_value,omitzero"`
	KeyID          string  `json:"key_id"`
	// SelectedRepositoryIDs are repository ids as strings or numbers.
	SelectedRepositoryIDs []string       `json:"selected_repository_ids,omitzero"`
	AdditionalProperties  map[string]any `json:"-"`
}

func (b CodespacesCreateOrUpdateSecretForAuthenticatedUserBody) MarshalJSON() ([]byte, error) {
	type plain CodespacesCreateOrUpdateSecretForAuthenticatedUserBody
	return jsonext.Marshal(plain(b), b.AdditionalProperties)
}

func (b *CodespacesCreateOrUpdateSecretForAuthenticatedUserBody) UnmarshalJSON(data []byte) error {
	type plain CodespacesCreateOrUpdateSecretForAuthenticatedUserBody
	return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
}

func CodespacesCreateOrUpdateSecretForAuthenticatedUserURL(baseURL, secretName string) (string, error) {
	u := newURLBuilder(baseURL).lit("/user/codespaces/secrets/").path(secretName)
	return finishURL("codespaces/create-or-update-secret-for-authenticated-user", u)
}

func NewCodespacesCreateOrUpdateSecretForAuthenticatedUserRequest(baseURL, secretName, userAgent, accept string, content *Content) (*Request, error) {
	url, err := CodespacesCreateOrUpdateSecretForAuthenticatedUserURL(baseURL, secretName)
	if err != nil {
		return nil, err
	}
	return NewRequest("codespaces/create-or-update-secret-for-authenticated-user", http.MethodPut, url, userAgent, accept, content)
}

func (s CodespacesService[R]) CreateOrUpdateSecretForAuthenticatedUser(ctx context.Context, secretName string, body *CodespacesCreateOrUpdateSecretForAuthenticatedUserBody) (R, error) {
	content, err := s.c.jsonBody("codespaces/create-or-update-secret-for-authenticated-user", body)
	if err != nil {
		return s.c.do(ctx, nil, err)
	}
	cfg := s.c.config
	req, err := NewCodespacesCreateOrUpdateSecretForAuthenticatedUserRequest(cfg.BaseURL, secretName, cfg.UserAgent, cfg.Accept, content)
	return s.c.do(ctx, req, err)
}
