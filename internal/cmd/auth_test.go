package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/octoglue/octoglue/internal/config"
)

const rateLimitBody = `{
  "resources": {
    "core": {"limit": 5000, "remaining": 4990, "used": 10, "reset": 1700000000},
    "search": {"limit": 30, "remaining": 30, "used": 0, "reset": 1700000000}
  },
  "rate": {"limit": 5000, "remaining": 4990, "used": 10, "reset": 1700000000}
}`

func rateLimitHandler() *routeHandler {
	return newRouteHandler().On("GET", "/rate_limit", jsonResponse(200, rateLimitBody))
}

func TestAuthLogin_Token(t *testing.T) {
	handler := rateLimitHandler()
	env := setupTestEnvWithHandler(t, handler)
	t.Setenv("GITHUB_TOKEN", "")

	stdout, _, err := runCmd(t, "", "auth", "login", "--token", "ghp_new")
	if err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	if !strings.Contains(stdout, `profile "default"`) {
		t.Errorf("stdout = %q", stdout)
	}
	if got := handler.Requests()[0].Header.Get("Authorization"); got != "Bearer ghp_new" {
		t.Errorf("verification used Authorization %q", got)
	}

	p, err := config.LoadProfile("default")
	if err != nil {
		t.Fatalf("profile not saved: %v", err)
	}
	if p.AuthKind != config.AuthToken || p.Token != "ghp_new" || p.BaseURL != env.server.URL {
		t.Errorf("profile = %+v", p)
	}
}

func TestAuthLogin_WithTokenFromStdin(t *testing.T) {
	setupTestEnvWithHandler(t, rateLimitHandler())

	if _, _, err := runCmd(t, "ghp_stdin\n", "auth", "login", "--with-token", "--profile", "work"); err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	p, err := config.LoadProfile("work")
	if err != nil {
		t.Fatalf("profile not saved: %v", err)
	}
	if p.Token != "ghp_stdin" {
		t.Errorf("token = %q", p.Token)
	}
	current, _ := config.CurrentProfile()
	if current != "work" {
		t.Errorf("current profile = %q, want work", current)
	}
}

func TestAuthLogin_Basic(t *testing.T) {
	handler := rateLimitHandler()
	setupTestEnvWithHandler(t, handler)

	if _, _, err := runCmd(t, "", "auth", "login", "--user", "octocat", "--token", "pw"); err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	// "octocat:pw"
	if got := handler.Requests()[0].Header.Get("Authorization"); got != "Basic b2N0b2NhdDpwdw==" {
		t.Errorf("Authorization = %q", got)
	}
	p, _ := config.LoadProfile("default")
	if p.AuthKind != config.AuthBasic || p.User != "octocat" {
		t.Errorf("profile = %+v", p)
	}
}

func TestAuthLogin_App(t *testing.T) {
	handler := rateLimitHandler()
	setupTestEnvWithHandler(t, handler)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	keyPath := filepath.Join(t.TempDir(), "app.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(keyPath, pemBytes, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCmd(t, "", "auth", "login", "--app-id", "12345", "--app-key", keyPath); err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	if got := handler.Requests()[0].Header.Get("Authorization"); !strings.HasPrefix(got, "Bearer ey") {
		t.Errorf("expected a JWT, got %q", got)
	}
	p, _ := config.LoadProfile("default")
	if p.AuthKind != config.AuthApp || p.AppID != "12345" || p.AppKeyPath != keyPath {
		t.Errorf("profile = %+v", p)
	}
}

func TestAuthLogin_VerificationFailureDoesNotSave(t *testing.T) {
	setupTestEnv(t, jsonResponse(http.StatusUnauthorized, `{"message":"Bad credentials"}`))

	_, _, err := runCmd(t, "", "auth", "login", "--token", "bad")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ExitCode(err); got != exitAuth {
		t.Errorf("exit code = %d, want %d", got, exitAuth)
	}
	if _, err := config.LoadProfile("default"); !errors.Is(err, config.ErrNotConfigured) {
		t.Errorf("profile should not be saved, LoadProfile err = %v", err)
	}
}

func TestAuthLogin_SkipVerify(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	if _, _, err := runCmd(t, "", "auth", "login", "--token", "x", "--skip-verify"); err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	if n := len(handler.Requests()); n != 0 {
		t.Errorf("--skip-verify sent %d requests", n)
	}
}

func TestAuthLogin_DryRunDoesNotSave(t *testing.T) {
	setupTestEnvWithHandler(t, rateLimitHandler())

	_, stderr, err := runCmd(t, "", "auth", "login", "--token", "x", "--dry-run")
	if err != nil {
		t.Fatalf("auth login failed: %v", err)
	}
	if !strings.Contains(stderr, "[DRY-RUN]") {
		t.Errorf("stderr = %q", stderr)
	}
	if _, err := config.LoadProfile("default"); !errors.Is(err, config.ErrNotConfigured) {
		t.Errorf("dry run saved a profile: %v", err)
	}
}

func TestAuthLogin_Validation(t *testing.T) {
	setupTestEnvWithHandler(t, rateLimitHandler())
	tests := []struct {
		name string
		args []string
	}{
		{"no credentials", []string{"auth", "login"}},
		{"app id without key", []string{"auth", "login", "--app-id", "1"}},
		{"app with token", []string{"auth", "login", "--app-id", "1", "--app-key", "k.pem", "--token", "x"}},
		{"token twice", []string{"auth", "login", "--token", "x", "--with-token"}},
		{"missing key file", []string{"auth", "login", "--app-id", "1", "--app-key", "/nonexistent/app.pem"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCmd(t, "", tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAuthStatus(t *testing.T) {
	setupTestEnvWithHandler(t, rateLimitHandler())

	stdout, _, err := runCmd(t, "", "auth", "status")
	if err != nil {
		t.Fatalf("auth status failed: %v", err)
	}
	for _, want := range []string{"PROFILE", "default", "AUTH", "token", "RESOURCE", "core", "4990", "search"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = runCmd(t, "", "auth", "status", "--jq", ".rate_limit.core.remaining")
	if err != nil {
		t.Fatalf("auth status --jq failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "4990" {
		t.Errorf("jq output = %q", stdout)
	}
}

func TestAuthLogoutListSwitch(t *testing.T) {
	setupTestEnvWithHandler(t, rateLimitHandler())

	for _, name := range []string{"personal", "work"} {
		if _, _, err := runCmd(t, "", "auth", "login", "--token", "t-"+name, "--profile", name, "--skip-verify"); err != nil {
			t.Fatalf("login %s: %v", name, err)
		}
	}

	stdout, _, err := runCmd(t, "", "auth", "list")
	if err != nil {
		t.Fatalf("auth list failed: %v", err)
	}
	if !strings.Contains(stdout, "personal") || !strings.Contains(stdout, "*  work") {
		t.Errorf("auth list output:\n%s", stdout)
	}

	if _, _, err := runCmd(t, "", "auth", "switch", "personal"); err != nil {
		t.Fatalf("auth switch failed: %v", err)
	}
	if current, _ := config.CurrentProfile(); current != "personal" {
		t.Errorf("current = %q, want personal", current)
	}
	if _, _, err := runCmd(t, "", "auth", "switch", "nope"); err == nil {
		t.Error("expected error switching to an unknown profile")
	}

	if _, _, err := runCmd(t, "", "auth", "logout"); err != nil {
		t.Fatalf("auth logout failed: %v", err)
	}
	if _, err := config.LoadProfile("personal"); !errors.Is(err, config.ErrNotConfigured) {
		t.Errorf("personal should be removed, err = %v", err)
	}
	if current, _ := config.CurrentProfile(); current != "work" {
		t.Errorf("current after logout = %q, want work", current)
	}
}
