package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/api/async"
	"github.com/octoglue/octoglue/api/nethttp"
	"github.com/octoglue/octoglue/api/retryable"
	"github.com/octoglue/octoglue/internal/config"
	"github.com/octoglue/octoglue/internal/dryrun"
	"github.com/octoglue/octoglue/internal/iocontext"
	"github.com/octoglue/octoglue/internal/validation"
)

const (
	backendNetHTTP   = "nethttp"
	backendRetryable = "retryable"
	backendAsync     = "async"

	// retryableRetryMax is the go-retryablehttp budget used by the
	// retryable backend.
	retryableRetryMax = 3
)

var backends = []string{backendNetHTTP, backendRetryable, backendAsync}

func validateBackend(name string) error {
	for _, b := range backends {
		if name == b {
			return nil
		}
	}
	return fmt.Errorf("invalid --backend %q: use %s", name, strings.Join(backends, ", "))
}

// errDryRun stops a request after its preview has been printed.
var errDryRun = errors.New("dry run: request not sent")

type clientFactory struct {
	timeout   time.Duration
	userAgent string
	accept    string
	backend   string
	baseURL   string
	profile   string
	env       config.Env
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("octoglue-cli/%s (%s)", version, api.DefaultUserAgent),
		accept:    flags.Accept,
		backend:   flags.Backend,
		baseURL:   flags.BaseURL,
		profile:   flags.Profile,
		env:       flags.env,
	}
}

// resolve merges the stored profile with the environment and flags.
func (f *clientFactory) resolve() (config.ClientConfig, error) {
	cfg, err := config.Resolve(f.env, config.Overrides{Profile: f.profile, BaseURL: f.baseURL})
	if err != nil {
		return config.ClientConfig{}, &configError{err: err}
	}
	if cfg.BaseURL != "" {
		normalized, err := validation.NormalizeBaseURL(cfg.BaseURL)
		if err != nil {
			return config.ClientConfig{}, &configError{err: fmt.Errorf("invalid base URL: %w", err)}
		}
		cfg.BaseURL = normalized
	}
	return cfg, nil
}

func (f *clientFactory) configuration(cfg config.ClientConfig) (*api.Configuration, error) {
	auth, err := cfg.Authentication()
	if err != nil {
		return nil, &configError{err: err}
	}
	opts := []api.Option{
		api.WithAuthentication(auth),
		api.WithUserAgent(f.userAgent),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, api.WithBaseURL(cfg.BaseURL))
	}
	if f.accept != "" {
		opts = append(opts, api.WithAccept(f.accept))
	}
	return api.NewConfiguration(opts...), nil
}

// caller builds a Caller for the resolved configuration. Every backend is
// adapted to return *http.Response: the async backend's futures are
// awaited in place.
func (f *clientFactory) caller(ctx context.Context) (*api.Caller[*http.Response], error) {
	cfg, err := f.resolve()
	if err != nil {
		return nil, err
	}
	return f.callerFor(ctx, cfg)
}

// callerFor builds a Caller for cfg without consulting stored profiles.
func (f *clientFactory) callerFor(ctx context.Context, cfg config.ClientConfig) (*api.Caller[*http.Response], error) {
	if cfg.BaseURL != "" {
		if err := validation.ValidateBaseURL(cfg.BaseURL); err != nil {
			return nil, &configError{err: fmt.Errorf("invalid base URL: %w", err)}
		}
	}
	apiCfg, err := f.configuration(cfg)
	if err != nil {
		return nil, err
	}
	return api.NewCaller(f.newBackend(ctx), apiCfg), nil
}

func (f *clientFactory) httpClient() *http.Client {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = f.timeout
	return client
}

func (f *clientFactory) newBackend(ctx context.Context) api.Backend[*http.Response] {
	var backend api.Backend[*http.Response]
	switch f.backend {
	case backendRetryable:
		client := retryable.NewClient(retryableRetryMax)
		client.HTTPClient = f.httpClient()
		backend = retryable.New(client)
	case backendAsync:
		inner := async.New[*http.Response](nethttp.New(f.httpClient()))
		backend = api.BackendFunc[*http.Response](func(ctx context.Context, req *api.Request) (*http.Response, error) {
			future, err := inner.Send(ctx, req)
			if err != nil {
				return nil, err
			}
			return future.Wait(ctx)
		})
	default:
		backend = nethttp.New(f.httpClient())
	}

	if dryrun.IsEnabled(ctx) {
		out := iocontext.GetIO(ctx).Out
		return api.BackendFunc[*http.Response](func(ctx context.Context, req *api.Request) (*http.Response, error) {
			preview := dryrun.FromRequest(req)
			if err := printPreview(ctx, out, preview); err != nil {
				return nil, err
			}
			return nil, errDryRun
		})
	}
	return backend
}

// getCaller creates a Caller from stored credentials, the environment and
// global flags.
func getCaller(ctx context.Context) (*api.Caller[*http.Response], error) {
	return newClientFactory().caller(ctx)
}
