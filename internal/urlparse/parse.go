// Package urlparse extracts repository references from GitHub web URLs.
package urlparse

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ParsedURL is a repository, optionally narrowed to one issue, pull
// request or release.
type ParsedURL struct {
	// Host is the web host, e.g. github.com or a GHES hostname.
	Host  string
	Owner string
	Repo  string
	// Kind is "", "issue", "pull" or "release".
	Kind   string
	Number int
	Tag    string
}

var kinds = map[string]string{
	"issues":   "issue",
	"pull":     "pull",
	"releases": "release",
}

// /{owner}/{repo}[/{kind}[/...]]
var pathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+?)(?:\.git)?(?:/([a-z]+)(?:/(.*))?)?/?$`)

// IsURL reports whether s looks like an absolute web URL rather than an
// owner/repo pair.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// Parse extracts the repository from URLs such as
// https://github.com/cli/cli, https://github.com/cli/cli/issues/12 or
// https://github.com/cli/cli/releases/tag/v2.0.0.
func Parse(rawURL string) (*ParsedURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: missing scheme (expected https://...)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host")
	}

	m := pathPattern.FindStringSubmatch(parsed.Path)
	if m == nil {
		return nil, fmt.Errorf("invalid GitHub URL: expected /{owner}/{repo}[/issues/{number}]")
	}

	out := &ParsedURL{Host: parsed.Host, Owner: m[1], Repo: m[2]}
	if m[3] == "" {
		return out, nil
	}

	kind, ok := kinds[m[3]]
	if !ok {
		// Other repository pages (tree, blob, actions) still name the repo.
		return out, nil
	}
	out.Kind = kind
	rest := strings.Trim(m[4], "/")

	switch kind {
	case "issue", "pull":
		if rest == "" {
			return out, nil
		}
		num := rest
		if i := strings.IndexByte(num, '/'); i >= 0 {
			num = num[:i]
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s number %q", kind, num)
		}
		out.Number = n
	case "release":
		if tag, ok := strings.CutPrefix(rest, "tag/"); ok && tag != "" {
			out.Tag, _ = url.PathUnescape(tag)
		}
	}
	return out, nil
}

// FullName returns "owner/repo".
func (p *ParsedURL) FullName() string {
	return p.Owner + "/" + p.Repo
}

// HasNumber reports whether the URL names a single issue or pull request.
func (p *ParsedURL) HasNumber() bool {
	return p.Number > 0
}
