package debug

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

func TestWithDebug(t *testing.T) {
	ctx := WithDebug(context.Background(), true)
	if !IsEnabled(ctx) {
		t.Error("IsEnabled should return true when debug is enabled")
	}
}

func TestIsEnabled_DefaultFalse(t *testing.T) {
	if IsEnabled(context.Background()) {
		t.Error("IsEnabled should return false by default")
	}
}

func TestWithDebug_Disabled(t *testing.T) {
	ctx := WithDebug(context.Background(), false)
	if IsEnabled(ctx) {
		t.Error("IsEnabled should return false when debug is disabled")
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	SetupLogger(true)
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetupLogger(true) should enable debug level logging")
	}

	SetupLogger(false)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetupLogger(false) should disable debug level logging")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetupLogger(false) should keep warn level logging")
	}
}

func TestHeadersRedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	h := http.Header{}
	h.Set("Authorization", "Bearer ghp_secret")
	h.Set("User-Agent", "octoglue/test")

	logger.Debug("request", Headers(h))

	out := buf.String()
	if strings.Contains(out, "ghp_secret") {
		t.Fatalf("token leaked into log output: %s", out)
	}
	if !strings.Contains(out, "headers.Authorization=[redacted]") {
		t.Errorf("expected redacted authorization, got: %s", out)
	}
	if !strings.Contains(out, "headers.User-Agent=octoglue/test") {
		t.Errorf("expected user agent, got: %s", out)
	}
}
