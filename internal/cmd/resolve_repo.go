package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/cache"
	"github.com/octoglue/octoglue/internal/pager"
	"github.com/octoglue/octoglue/internal/resolve"
	"github.com/octoglue/octoglue/internal/urlparse"
	"github.com/octoglue/octoglue/internal/validation"
)

const repoCacheKey = "repos"

func resolveCacheDir() string {
	if dir := os.Getenv("OCTOGLUE_CACHE_DIR"); dir != "" {
		return dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return ""
	}
	return dir
}

func repoNameStore(dir, baseURL, login string) *cache.Store[[]string] {
	return cache.NewStore[[]string](dir, repoCacheKey, displayBaseURL(baseURL), login)
}

// cacheRepoNames remembers the names of login's repositories so later
// commands can accept a bare repository name.
func cacheRepoNames(baseURL, login string, repos []json.RawMessage) {
	dir := resolveCacheDir()
	if dir == "" {
		return
	}
	repoNameStore(dir, baseURL, login).Put(repoNames(repos))
}

// resolveRepo resolves a repository argument to owner and name.
// Accepts: OWNER/REPO, a GitHub web URL, or the name of one of the
// configured user's repositories (fuzzy match, cached).
func resolveRepo(ctx context.Context, factory *clientFactory, caller *api.Caller[*http.Response], arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if urlparse.IsURL(arg) {
		parsed, err := urlparse.Parse(arg)
		if err != nil {
			return "", "", err
		}
		return validation.ParseRepo(parsed.FullName())
	}
	if strings.Contains(arg, "/") {
		return validation.ParseRepo(arg)
	}

	cfg, err := factory.resolve()
	if err != nil {
		return "", "", err
	}
	if cfg.User == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected OWNER/REPO (or set GITHUB_USER to use bare names)", arg)
	}
	if err := validation.ValidateRepoName(arg); err != nil {
		return "", "", err
	}

	if dir := resolveCacheDir(); dir != "" {
		if names, ok := repoNameStore(dir, cfg.BaseURL, cfg.User).Get(); ok {
			if name, err := resolve.Match(arg, names); err == nil {
				return cfg.User, name, nil
			}
			// Cache might be stale, fall through to API.
		}
	}

	repos, err := pager.All(ctx, newPager(caller), func(ctx context.Context, page int) ([]json.RawMessage, error) {
		var items []json.RawMessage
		resp, err := caller.Repos().ListForUser(ctx, cfg.User, &api.ReposListForUserQuery{
			PerPage: api.Int64(pager.DefaultPerPage),
			Page:    api.Int64(int64(page)),
		})
		_, err = decodeResponse(resp, err, &items)
		return items, err
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to list repositories of %s: %w", cfg.User, err)
	}
	cacheRepoNames(cfg.BaseURL, cfg.User, repos)

	name, err := resolve.Match(arg, repoNames(repos))
	if err != nil {
		return "", "", fmt.Errorf("invalid repository %q for %s: %w", arg, cfg.User, err)
	}
	return cfg.User, name, nil
}

func repoNames(repos []json.RawMessage) []string {
	names := make([]string, 0, len(repos))
	for _, raw := range repos {
		var r struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(raw, &r) == nil && r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return names
}
