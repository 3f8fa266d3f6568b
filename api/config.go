package api

import "net/http"

// Version is the library version reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent is sent when a configuration does not set one.
const DefaultUserAgent = "octoglue/" + Version

// Configuration is shared by every request a Caller sends. It is built
// once and treated as read-only afterwards.
type Configuration struct {
	// BaseURL is the API root. Empty means DefaultBaseURL.
	BaseURL        string
	Authentication Authentication
	UserAgent      string
	// Accept is the media type requested. Empty sends no Accept header.
	Accept string
	// Header holds extra headers added to every request unless the
	// request already sets them.
	Header http.Header
}

// Option configures a Configuration.
type Option func(*Configuration)

// NewConfiguration returns a configuration with no authentication, the
// default User-Agent and the v3 JSON media type.
func NewConfiguration(opts ...Option) *Configuration {
	cfg := &Configuration{
		Authentication: NoAuth(),
		UserAgent:      DefaultUserAgent,
		Accept:         DefaultAccept,
		Header:         make(http.Header),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBaseURL points requests at another API root, e.g. a GitHub
// Enterprise Server "https://ghe.example.com/api/v3".
func WithBaseURL(baseURL string) Option {
	return func(c *Configuration) { c.BaseURL = baseURL }
}

// WithAuthentication selects how requests are authenticated.
func WithAuthentication(auth Authentication) Option {
	return func(c *Configuration) {
		if auth == nil {
			auth = NoAuth()
		}
		c.Authentication = auth
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Configuration) { c.UserAgent = userAgent }
}

// WithAccept overrides the requested media type, for example
// "application/vnd.github.raw" to fetch file contents directly.
func WithAccept(accept string) Option {
	return func(c *Configuration) { c.Accept = accept }
}

// WithHeader adds a default header.
func WithHeader(name, value string) Option {
	return func(c *Configuration) {
		if c.Header == nil {
			c.Header = make(http.Header)
		}
		c.Header.Add(name, value)
	}
}
