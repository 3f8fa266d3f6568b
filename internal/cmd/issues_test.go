package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

const issuesPage = `[
  {"number": 12, "title": "Fix login", "state": "open", "user": {"login": "octocat"}, "repository": {"full_name": "octocat/hello-world"}},
  {"number": 7, "title": "Docs typo", "state": "closed", "user": {"login": "hubot"}, "repository": {"full_name": "octocat/docs"}}
]`

func TestIssuesList_Text(t *testing.T) {
	handler := newRouteHandler().On("GET", "/issues", pagedResponse(t, issuesPage))
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "issues", "list")
	if err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	for _, want := range []string{"REPO", "octocat/hello-world", "#12", "Fix login", "hubot", "closed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestIssuesList_FilterAndSort(t *testing.T) {
	handler := newRouteHandler().On("GET", "/issues", pagedResponse(t))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "issues", "list",
		"--filter", "created", "--state", "all", "--labels", "bug,ui",
		"--since", "2024-01-01T00:00:00Z", "--sort", "updated", "--direction", "asc", "--per-page", "50")
	if err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	reqs := handler.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	q := reqs[0].URL.Query()
	want := map[string]string{
		"filter":    "created",
		"state":     "all",
		"labels":    "bug,ui",
		"since":     "2024-01-01T00:00:00Z",
		"sort":      "updated",
		"direction": "asc",
		"per_page":  "50",
		"page":      "1",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestIssuesList_SortDefaultsToDescending(t *testing.T) {
	handler := newRouteHandler().On("GET", "/issues", pagedResponse(t))
	setupTestEnvWithHandler(t, handler)

	if _, _, err := runCmd(t, "", "issues", "list", "--sort", "created"); err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	if got := handler.Requests()[0].URL.Query().Get("direction"); got != "desc" {
		t.Errorf("direction = %q, want desc", got)
	}
}

func TestIssuesList_Limit(t *testing.T) {
	handler := newRouteHandler().On("GET", "/issues", pagedResponse(t, issuesPage, issuesPage))
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "issues", "list", "--limit", "3", "-o", "json")
	if err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	if items := decodeArray(t, stdout); len(items) != 3 {
		t.Errorf("got %d issues, want 3", len(items))
	}
	if n := len(handler.Requests()); n != 2 {
		t.Errorf("expected 2 page requests, got %d", n)
	}
}

func TestIssuesList_EmptyJSON(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler().On("GET", "/issues", pagedResponse(t)))

	stdout, _, err := runCmd(t, "", "issues", "list", "-o", "json")
	if err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "[]" {
		t.Errorf("stdout = %q, want []", stdout)
	}
}

func TestIssuesList_DirectionRequiresSort(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `[]`))
	_, _, err := runCmd(t, "", "issues", "list", "--direction", "asc")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ExitCode(err); got != exitUsage {
		t.Errorf("exit code = %d, want %d", got, exitUsage)
	}
}

func TestIssuesList_Unauthorized(t *testing.T) {
	setupTestEnv(t, jsonResponse(http.StatusUnauthorized, `{"message":"Bad credentials"}`))
	_, stderr, err := runCmd(t, "", "issues", "list")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ExitCode(err); got != exitAuth {
		t.Errorf("exit code = %d, want %d", got, exitAuth)
	}
	if !strings.Contains(stderr, "Bad credentials") || !strings.Contains(stderr, "octoglue auth login") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestIssuesCreate(t *testing.T) {
	var body map[string]any
	handler := newRouteHandler().On("POST", "/repos/octocat/hello-world/issues", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			t.Errorf("body is not JSON: %s", data)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		jsonResponse(http.StatusCreated, `{"number": 42, "html_url": "https://github.com/octocat/hello-world/issues/42"}`)(w, r)
	})
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "issues", "create", "octocat/hello-world",
		"--title", "Broken link", "--body", "See /docs", "--label", "docs", "--label", "bug", "--assignee", "octocat", "--milestone", "3")
	if err != nil {
		t.Fatalf("issues create failed: %v", err)
	}
	if !strings.Contains(stdout, "Created issue #42") {
		t.Errorf("stdout = %q", stdout)
	}

	if body["title"] != "Broken link" || body["body"] != "See /docs" {
		t.Errorf("unexpected body: %v", body)
	}
	if labels, _ := body["labels"].([]any); len(labels) != 2 || labels[0] != "docs" {
		t.Errorf("labels = %v", body["labels"])
	}
	if assignees, _ := body["assignees"].([]any); len(assignees) != 1 || assignees[0] != "octocat" {
		t.Errorf("assignees = %v", body["assignees"])
	}
	if body["milestone"] != float64(3) {
		t.Errorf("milestone = %v", body["milestone"])
	}
	if _, ok := body["assignee"]; ok {
		t.Error("absent assignee should be omitted")
	}
}

func TestIssuesCreate_NullMilestone(t *testing.T) {
	var raw string
	handler := newRouteHandler().On("POST", "/repos/octocat/hello-world/issues", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		raw = string(data)
		jsonResponse(http.StatusCreated, `{"number": 1}`)(w, r)
	})
	setupTestEnvWithHandler(t, handler)

	if _, _, err := runCmd(t, "", "issues", "create", "octocat/hello-world", "--title", "x", "--milestone", "none"); err != nil {
		t.Fatalf("issues create failed: %v", err)
	}
	if !strings.Contains(raw, `"milestone":null`) {
		t.Errorf("expected explicit null milestone, got %s", raw)
	}
	if strings.Contains(raw, `"body"`) {
		t.Errorf("unset body should be omitted, got %s", raw)
	}
}

func TestIssuesCreate_NotRetried(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			handler := newRouteHandler().On("POST", "/repos/octocat/hello-world/issues", jsonResponse(http.StatusBadGateway, `{"message":"Bad Gateway"}`))
			setupTestEnvWithHandler(t, handler)

			_, _, err := runCmd(t, "", "--backend", backend, "issues", "create", "octocat/hello-world", "--title", "x")
			if got := ExitCode(err); got != exitServer {
				t.Errorf("exit code = %d, want %d", got, exitServer)
			}
			if n := len(handler.Requests()); n != 1 {
				t.Errorf("create was sent %d times, want 1", n)
			}
		})
	}
}

func TestIssuesCreate_Validation(t *testing.T) {
	setupTestEnv(t, jsonResponse(201, `{}`))
	tests := []struct {
		name string
		args []string
	}{
		{"missing title", []string{"issues", "create", "octocat/hello-world"}},
		{"bad repo", []string{"issues", "create", "hello-world", "--title", "x"}},
		{"bad milestone", []string{"issues", "create", "octocat/hello-world", "--title", "x", "--milestone", "soon"}},
		{"negative milestone", []string{"issues", "create", "octocat/hello-world", "--title", "x", "--milestone=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := ExitCode(err); got != exitUsage {
				t.Errorf("exit code = %d, want %d", got, exitUsage)
			}
		})
	}
}

func TestIssuesCreate_DryRunJSON(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "issues", "create", "octocat/hello-world", "--title", "x", "--dry-run", "-o", "json")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	var preview struct {
		Operation string          `json:"operation"`
		Method    string          `json:"method"`
		Body      json.RawMessage `json:"body"`
		Warnings  []string        `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(stdout), &preview); err != nil {
		t.Fatalf("preview is not JSON: %v\n%s", err, stdout)
	}
	if preview.Operation != "issues/create" || preview.Method != "POST" {
		t.Errorf("preview = %+v", preview)
	}
	var body map[string]any
	if err := json.Unmarshal(preview.Body, &body); err != nil || len(body) != 1 || body["title"] != "x" {
		t.Errorf("body = %s", preview.Body)
	}
	if len(preview.Warnings) == 0 {
		t.Error("expected a warning for a write")
	}
	if n := len(handler.Requests()); n != 0 {
		t.Errorf("dry run sent %d requests", n)
	}
}

func TestIssuesList_RelativeSince(t *testing.T) {
	handler := newRouteHandler().On("GET", "/issues", pagedResponse(t))
	setupTestEnvWithHandler(t, handler)

	before := time.Now().Add(-48 * time.Hour).Add(-time.Second)
	if _, _, err := runCmd(t, "", "issues", "list", "--since", "2d ago"); err != nil {
		t.Fatalf("issues list failed: %v", err)
	}
	since, err := time.Parse(time.RFC3339, handler.Requests()[0].URL.Query().Get("since"))
	if err != nil {
		t.Fatalf("since is not RFC3339: %v", err)
	}
	if since.Before(before) || since.After(time.Now().Add(-47*time.Hour)) {
		t.Errorf("since = %s, want about two days ago", since)
	}
}

func TestIssuesList_InvalidSince(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCmd(t, "", "issues", "list", "--since", "next week")
	if got := ExitCode(err); got != exitUsage {
		t.Errorf("exit code = %d, want %d", got, exitUsage)
	}
	if n := len(handler.Requests()); n != 0 {
		t.Errorf("sent %d requests", n)
	}
}
