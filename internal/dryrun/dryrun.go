// Package dryrun prints the request a command would send instead of
// sending it.
package dryrun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/octoglue/octoglue/api"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

var secretHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
}

// Preview describes a request that was not sent.
type Preview struct {
	Operation string            `json:"operation"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers,omitempty"`
	Body      json.RawMessage   `json:"body,omitempty"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// FromRequest builds a preview of req. Credential headers are masked.
func FromRequest(req *api.Request) *Preview {
	p := &Preview{
		Operation: req.Operation,
		Method:    req.Method,
		URL:       req.URL,
		Headers:   make(map[string]string, len(req.Header)),
	}
	for name, values := range req.Header {
		name = http.CanonicalHeaderKey(name)
		if secretHeaders[name] {
			p.Headers[name] = "[redacted]"
			continue
		}
		p.Headers[name] = strings.Join(values, ", ")
	}
	if len(req.Body) > 0 {
		if json.Valid(req.Body) {
			p.Body = req.Body
		} else {
			quoted, _ := json.Marshal(string(req.Body))
			p.Body = quoted
		}
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		p.Warnings = append(p.Warnings, fmt.Sprintf("%s modifies data on the server", req.Method))
	}
	return p
}

// Write outputs the preview to the writer
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would send %s %s\n", p.Method, p.URL)
	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")

	if p.Operation != "" {
		_, _ = fmt.Fprintf(w, "Operation: %s\n\n", p.Operation)
	}

	if len(p.Headers) > 0 {
		names := make([]string, 0, len(p.Headers))
		for name := range p.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", name, p.Headers[name])
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(p.Body) > 0 {
		_, _ = fmt.Fprintf(w, "%s\n\n", p.Body)
	}

	if len(p.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, warning := range p.Warnings {
			_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")
	_, _ = fmt.Fprintln(w, "No request sent (dry-run mode)")
}
