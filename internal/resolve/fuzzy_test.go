package resolve_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/octoglue/octoglue/internal/resolve"
)

var opIDs = []string{
	"markdown/render",
	"repos/list-for-user",
	"repos/list-for-org",
	"issues/list-for-repo",
	"issues/create",
}

func TestMatch_Exact(t *testing.T) {
	got, err := resolve.Match("Issues/Create", opIDs)
	if err != nil {
		t.Fatal(err)
	}
	if got != "issues/create" {
		t.Fatalf("expected issues/create, got %q", got)
	}
}

func TestMatch_Fuzzy(t *testing.T) {
	got, err := resolve.Match("mdrender", opIDs)
	if err != nil {
		t.Fatal(err)
	}
	if got != "markdown/render" {
		t.Fatalf("expected markdown/render, got %q", got)
	}
}

func TestMatch_PrefersExactOverFuzzy(t *testing.T) {
	names := []string{"render", "markdown/render"}
	got, err := resolve.Match("render", names)
	if err != nil {
		t.Fatal(err)
	}
	if got != "render" {
		t.Fatalf("expected exact match, got %q", got)
	}
}

func TestMatch_Ambiguous(t *testing.T) {
	_, err := resolve.Match("support", []string{"support-us", "support-eu"})
	var ae *resolve.AmbiguousError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AmbiguousError, got %T: %v", err, err)
	}
	if len(ae.Matches) != 2 {
		t.Fatalf("expected both candidates, got %+v", ae.Matches)
	}
}

func TestMatch_NotFound(t *testing.T) {
	_, err := resolve.Match("reops", []string{"repos", "issues"})
	var nf *resolve.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if len(nf.Suggestions) != 1 || nf.Suggestions[0] != "repos" {
		t.Fatalf("unexpected suggestions: %v", nf.Suggestions)
	}
	if !strings.Contains(err.Error(), "Did you mean") {
		t.Fatalf("missing suggestion text: %q", err.Error())
	}
}

func TestMatch_EmptyInput(t *testing.T) {
	if _, err := resolve.Match("  ", opIDs); !errors.Is(err, resolve.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := resolve.Match("repos", nil); !errors.Is(err, resolve.ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	got := resolve.Suggest("repos/list", opIDs, 5)
	if len(got) < 2 {
		t.Fatalf("expected both repos list operations, got %v", got)
	}
	for _, s := range got[:2] {
		if !strings.HasPrefix(s, "repos/list-for-") {
			t.Fatalf("unexpected ranking: %v", got)
		}
	}

	if got := resolve.Suggest("repos/list", opIDs, 1); len(got) != 1 {
		t.Fatalf("limit not applied: %v", got)
	}
	if got := resolve.Suggest("", opIDs, 3); got != nil {
		t.Fatalf("expected nil for empty query, got %v", got)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"repos", "", 5},
		{"Repos", "repos", 0},
		{"reops", "repos", 2},
		{"issue", "issues", 1},
	}
	for _, tt := range tests {
		if got := resolve.Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAmbiguousErrorString(t *testing.T) {
	err := &resolve.AmbiguousError{Query: "support", Matches: []string{"support-us", "support-eu"}}
	msg := err.Error()
	if !strings.Contains(msg, `ambiguous match for "support"`) {
		t.Fatalf("missing query in error message: %q", msg)
	}
	if !strings.Contains(msg, "support-us") || !strings.Contains(msg, "support-eu") {
		t.Fatalf("missing candidates in error message: %q", msg)
	}
}

func TestSuggest_CloserEditsFirst(t *testing.T) {
	got := resolve.Suggest("auht", []string{"api", "auth"}, 1)
	if len(got) != 1 || got[0] != "auth" {
		t.Fatalf("Suggest(auht) = %v, want [auth]", got)
	}
}
