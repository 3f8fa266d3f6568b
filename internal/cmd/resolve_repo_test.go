package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/octoglue/octoglue/internal/cache"
)

const latestReleaseBody = `{"tag_name":"v1.0.0","name":"One","published_at":"2024-01-01T00:00:00Z","html_url":"https://github.com/octocat/hello-world/releases/tag/v1.0.0"}`

func countPath(reqs []*http.Request, path string) int {
	n := 0
	for _, r := range reqs {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}

func TestResolveRepo_URL(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/repos/cli/cli/releases/latest", jsonResponse(200, `{"tag_name":"v2.40.0"}`))
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "repos", "latest-release", "https://github.com/cli/cli/releases/tag/v2.39.0")
	if err != nil {
		t.Fatalf("latest-release failed: %v", err)
	}
	if !strings.Contains(stdout, "v2.40.0") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestResolveRepo_BareNameFetchesAndCaches(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/users/octocat/repos", pagedResponse(t,
			`[{"name":"hello-world","full_name":"octocat/hello-world"},{"name":"spoon-knife","full_name":"octocat/spoon-knife"}]`,
		)).
		On("GET", "/repos/octocat/hello-world/releases/latest", jsonResponse(200, latestReleaseBody))
	env := setupTestEnvWithHandler(t, handler)
	t.Setenv("GITHUB_USER", "octocat")

	for i := 0; i < 2; i++ {
		if _, _, err := runCmd(t, "", "repos", "latest-release", "hello"); err != nil {
			t.Fatalf("run %d: latest-release failed: %v", i, err)
		}
	}

	reqs := handler.Requests()
	if n := countPath(reqs, "/users/octocat/repos"); n != 2 {
		// One listing: a page of results and the empty page ending it.
		t.Errorf("repository list requests = %d, want 2", n)
	}
	if n := countPath(reqs, "/repos/octocat/hello-world/releases/latest"); n != 2 {
		t.Errorf("release requests = %d, want 2", n)
	}

	names, ok := cache.NewStore[[]string](env.cacheDir, "repos", env.server.URL, "octocat").Get()
	if !ok {
		t.Fatal("expected repository names in cache")
	}
	if len(names) != 2 || names[0] != "hello-world" {
		t.Errorf("cached names = %v", names)
	}
}

func TestResolveRepo_ReposListFillsCache(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/users/octocat/repos", pagedResponse(t,
			`[{"name":"hello-world","full_name":"octocat/hello-world"}]`,
		)).
		On("GET", "/repos/octocat/hello-world/releases/latest", jsonResponse(200, latestReleaseBody))
	setupTestEnvWithHandler(t, handler)

	if _, _, err := runCmd(t, "", "repos", "list", "octocat"); err != nil {
		t.Fatalf("repos list failed: %v", err)
	}
	before := countPath(handler.Requests(), "/users/octocat/repos")

	t.Setenv("GITHUB_USER", "octocat")
	if _, _, err := runCmd(t, "", "repos", "latest-release", "hello-world"); err != nil {
		t.Fatalf("latest-release failed: %v", err)
	}
	if after := countPath(handler.Requests(), "/users/octocat/repos"); after != before {
		t.Errorf("bare name should resolve from cache, listed %d more pages", after-before)
	}
}

func TestResolveRepo_NoCache(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/users/octocat/repos", pagedResponse(t, `[{"name":"hello-world"}]`)).
		On("GET", "/repos/octocat/hello-world/releases/latest", jsonResponse(200, latestReleaseBody))
	env := setupTestEnvWithHandler(t, handler)
	t.Setenv("GITHUB_USER", "octocat")
	t.Setenv("OCTOGLUE_NO_CACHE", "1")

	if _, _, err := runCmd(t, "", "repos", "latest-release", "hello-world"); err != nil {
		t.Fatalf("latest-release failed: %v", err)
	}
	if files := cache.Files(env.cacheDir); len(files) != 0 {
		t.Errorf("cache disabled but %d files written", len(files))
	}
}

func TestResolveRepo_Errors(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/users/octocat/repos", pagedResponse(t, `[{"name":"hello-world"}]`))

	t.Run("bare name without user", func(t *testing.T) {
		setupTestEnvWithHandler(t, handler)
		_, stderr, err := runCmd(t, "", "repos", "latest-release", "hello-world")
		if got := ExitCode(err); got != exitUsage {
			t.Errorf("exit code = %d, want %d", got, exitUsage)
		}
		if !strings.Contains(stderr, "GITHUB_USER") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("no match", func(t *testing.T) {
		setupTestEnvWithHandler(t, handler)
		t.Setenv("GITHUB_USER", "octocat")
		_, _, err := runCmd(t, "", "repos", "latest-release", "zzz")
		if got := ExitCode(err); got != exitUsage {
			t.Errorf("exit code = %d, want %d", got, exitUsage)
		}
	})

	t.Run("bad URL", func(t *testing.T) {
		setupTestEnvWithHandler(t, handler)
		_, _, err := runCmd(t, "", "issues", "create", "https://github.com/octocat", "--title", "x")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestCacheCommands(t *testing.T) {
	env := setupTestEnvWithHandler(t, newRouteHandler())
	cache.NewStore[[]string](env.cacheDir, "repos", env.server.URL, "octocat").Put([]string{"hello-world"})

	stdout, _, err := runCmd(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path failed: %v", err)
	}
	if !strings.HasPrefix(stdout, env.cacheDir+"\n") || !strings.Contains(stdout, "_octocat.json") {
		t.Errorf("cache path output:\n%s", stdout)
	}

	if _, _, err := runCmd(t, "", "cache", "clear", "--dry-run"); err != nil {
		t.Fatalf("cache clear --dry-run failed: %v", err)
	}
	if len(cache.Files(env.cacheDir)) != 1 {
		t.Fatal("dry run removed cache files")
	}

	stdout, _, err = runCmd(t, "", "cache", "clear", "--jq", ".removed")
	if err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "1" {
		t.Errorf("removed = %q, want 1", stdout)
	}
	if len(cache.Files(env.cacheDir)) != 0 {
		t.Error("cache files remain after clear")
	}
}
