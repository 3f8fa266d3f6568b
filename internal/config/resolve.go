package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/octoglue/octoglue/api"
)

// Overrides are values given on the command line. They win over the
// environment, which wins over the stored profile.
type Overrides struct {
	Profile string
	BaseURL string
}

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	Profile    string
	BaseURL    string
	AuthKind   string
	Token      string
	User       string
	AppID      string
	AppKeyPath string
}

// Resolve merges the stored profile, env and o. A missing profile is not
// an error: GitHub allows anonymous requests.
func Resolve(env Env, o Overrides) (ClientConfig, error) {
	name := firstNonEmpty(o.Profile, env.Profile)
	if name == "" {
		current, err := CurrentProfile()
		if err != nil {
			return ClientConfig{}, err
		}
		name = current
	}

	p, err := LoadProfile(name)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return ClientConfig{}, err
	}

	cfg := ClientConfig{
		Profile:    name,
		BaseURL:    p.BaseURL,
		AuthKind:   p.AuthKind,
		Token:      p.Token,
		User:       p.User,
		AppID:      p.AppID,
		AppKeyPath: p.AppKeyPath,
	}

	if env.Token != "" {
		cfg.Token = env.Token
		cfg.AuthKind = AuthToken
	}
	if env.AppID != "" && env.AppKeyPath != "" {
		cfg.AppID = env.AppID
		cfg.AppKeyPath = env.AppKeyPath
		if env.Token == "" {
			cfg.AuthKind = AuthApp
		}
	}
	cfg.User = firstNonEmpty(env.User, cfg.User)
	cfg.BaseURL = firstNonEmpty(o.BaseURL, env.BaseURL, cfg.BaseURL)
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")

	if cfg.AuthKind == "" {
		if cfg.Token != "" {
			cfg.AuthKind = AuthToken
		} else {
			cfg.AuthKind = AuthNone
		}
	}
	return cfg, nil
}

// Authentication builds the credential described by c.
func (c ClientConfig) Authentication() (api.Authentication, error) {
	switch c.AuthKind {
	case AuthNone, "":
		return api.NoAuth(), nil
	case AuthToken:
		if c.Token == "" {
			return nil, fmt.Errorf("profile %q has no token", c.Profile)
		}
		return api.StaticToken(c.Token), nil
	case AuthBasic:
		if c.User == "" {
			return nil, fmt.Errorf("basic auth requires a user (set GITHUB_USER)")
		}
		return api.Basic(c.User, c.Token), nil
	case AuthApp:
		if c.AppID == "" || c.AppKeyPath == "" {
			return nil, fmt.Errorf("app auth requires GITHUB_APP_ID and GITHUB_APP_PRIVATE_KEY_PATH")
		}
		data, err := os.ReadFile(c.AppKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read app private key: %w", err)
		}
		key, err := api.ParseAppKey(data)
		if err != nil {
			return nil, err
		}
		return api.AppJWT(c.AppID, key), nil
	default:
		return nil, fmt.Errorf("unknown auth kind %q", c.AuthKind)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
