// Package resolve matches user input against known names such as
// operation ids and command paths.
package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no names to match against")
)

// NotFoundError reports a query with no acceptable match. Suggestions are
// the closest names, best first.
type NotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "no match for %q", e.Query)
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nDid you mean one of these?")
		for _, s := range e.Suggestions {
			b.WriteString("\n  ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// AmbiguousError indicates multiple names matched equally well.
type AmbiguousError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			b.WriteString("\n  ")
			b.WriteString(m)
		}
	}
	return b.String()
}

type lowerSource []string

func (s lowerSource) String(i int) string { return strings.ToLower(s[i]) }
func (s lowerSource) Len() int            { return len(s) }

// Match returns the name that query refers to.
//
// An exact case-insensitive match wins. Otherwise the best fuzzy match is
// returned, unless the top two results tie, which is an *AmbiguousError.
// No fuzzy result at all is a *NotFoundError carrying suggestions.
func Match(query string, names []string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if len(names) == 0 {
		return "", ErrEmptyItems
	}

	for _, name := range names {
		if strings.EqualFold(name, query) {
			return name, nil
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), lowerSource(names))
	if len(results) == 0 {
		return "", &NotFoundError{Query: query, Suggestions: Suggest(query, names, 5)}
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return "", &AmbiguousError{Query: query, Matches: pick(names, results, 5)}
	}
	return names[results[0].Index], nil
}

// Suggest returns up to limit names close to query, best first. Fuzzy
// subsequence matches come first; names within a small edit distance
// fill the rest, which catches transposed letters.
func Suggest(query string, names []string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(names) == 0 || limit <= 0 {
		return nil
	}

	out := pick(names, fuzzy.FindFrom(query, lowerSource(names)), limit)
	seen := make(map[string]bool, len(out))
	for _, s := range out {
		seen[s] = true
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	for _, name := range names {
		if seen[name] {
			continue
		}
		if d := levenshtein(query, strings.ToLower(name)); d <= 3 {
			nearby = append(nearby, near{name, d})
			seen[name] = true
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, n := range nearby {
		if len(out) >= limit {
			break
		}
		out = append(out, n.name)
	}
	return out
}

func pick(names []string, results fuzzy.Matches, limit int) []string {
	if len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		return nil
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = names[r.Index]
	}
	return out
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	row := make([]int, lb+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= la; i++ {
		prev := i - 1
		row[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			val := min(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = val
		}
	}
	return row[lb]
}

// Distance is the case-insensitive edit distance between a and b.
func Distance(a, b string) int {
	return levenshtein(strings.ToLower(a), strings.ToLower(b))
}
