package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestCall_PathParamsAreEncoded(t *testing.T) {
	var escaped string
	handler := newRouteHandler().On("GET", "/repos/cli/cli/contents/docs/README.md", func(w http.ResponseWriter, r *http.Request) {
		escaped = r.URL.EscapedPath()
		jsonResponse(200, `{"name":"README.md","type":"file"}`)(w, r)
	})
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, "", "call", "repos/get-content", "-p", "owner=cli", "-p", "repo=cli", "-p", "path=docs/README.md", "-p", "ref=trunk")
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if escaped != "/repos/cli/cli/contents/docs%2FREADME.md" {
		t.Errorf("escaped path = %q", escaped)
	}
	if got := handler.Requests()[0].URL.Query().Get("ref"); got != "trunk" {
		t.Errorf("ref = %q", got)
	}
	if !strings.Contains(stdout, `"name": "README.md"`) {
		t.Errorf("expected pretty JSON, got %q", stdout)
	}
}

func TestCall_Body(t *testing.T) {
	var body map[string]any
	handler := newRouteHandler().On("POST", "/markdown", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte("<p>hi</p>"))
	})
	setupTestEnvWithHandler(t, handler)

	stdout, _, err := runCmd(t, `{"text":"hi"}`, "call", "markdown/render", "--body", "-")
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if body["text"] != "hi" {
		t.Errorf("body = %v", body)
	}
	if stdout != "<p>hi</p>" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCall_JQ(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler().
		On("GET", "/rate_limit", jsonResponse(200, `{"resources":{"core":{"limit":5000,"remaining":4999}}}`)))

	stdout, _, err := runCmd(t, "", "call", "rate-limit/get", "--jq", ".resources.core.remaining")
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "4999" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCall_UnknownOperationSuggests(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	_, stderr, err := runCmd(t, "", "call", "repos/get-contnet")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ExitCode(err); got != exitUsage {
		t.Errorf("exit code = %d, want %d", got, exitUsage)
	}
	if !strings.Contains(stderr, "repos/get-content") {
		t.Errorf("expected suggestion, got %q", stderr)
	}
	if n := len(handler.Requests()); n != 0 {
		t.Errorf("unknown operation sent %d requests", n)
	}
}

func TestCall_ParamErrors(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `{}`))
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing path param", []string{"call", "repos/get-content", "-p", "owner=cli", "-p", "repo=cli"}, `missing path parameter "path"`},
		{"unknown param", []string{"call", "rate-limit/get", "-p", "foo=bar"}, "unknown parameter"},
		{"malformed param", []string{"call", "rate-limit/get", "-p", "foo"}, "key=value"},
		{"body not allowed", []string{"call", "rate-limit/get", "--body", "{}"}, "does not take a request body"},
		{"invalid body", []string{"call", "markdown/render", "--body", "{nope"}, "not valid JSON"},
		{"no id", []string{"call"}, "operation id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCmd(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestCall_List(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `{}`))

	stdout, _, err := runCmd(t, "", "call", "--list", "--search", "release")
	if err != nil {
		t.Fatalf("call --list failed: %v", err)
	}
	if !strings.Contains(stdout, "repos/get-latest-release") {
		t.Errorf("list missing repos/get-latest-release:\n%s", stdout)
	}
	if strings.Contains(stdout, "issues/create") {
		t.Errorf("search did not filter:\n%s", stdout)
	}

	stdout, _, err = runCmd(t, "", "call", "--list", "-o", "json")
	if err != nil {
		t.Fatalf("call --list -o json failed: %v", err)
	}
	ops := decodeArray(t, stdout)
	if len(ops) < 40 {
		t.Errorf("expected the full catalog, got %d operations", len(ops))
	}
}

func TestCall_WritesAreNotRetried(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			handler := newRouteHandler().On("POST", "/markdown", jsonResponse(http.StatusServiceUnavailable, `{"message":"unavailable"}`))
			setupTestEnvWithHandler(t, handler)

			_, _, err := runCmd(t, "", "--backend", backend, "call", "markdown/render", "--body", `{"text":"x"}`)
			if got := ExitCode(err); got != exitServer {
				t.Errorf("exit code = %d, want %d", got, exitServer)
			}
			if n := len(handler.Requests()); n != 1 {
				t.Errorf("write sent %d times, want 1", n)
			}
		})
	}
}
