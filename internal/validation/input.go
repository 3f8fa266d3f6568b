package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxOwnerLength = 39
	MaxRepoLength  = 100
	MaxJSONPayload = 1048576 // --body and --input
	MaxURLLength   = 2048
)

var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)
	repoPattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ValidateOwner checks a user or organization login.
func ValidateOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if n := utf8.RuneCountInString(owner); n > MaxOwnerLength {
		return fmt.Errorf("owner exceeds maximum length of %d characters (got %d)", MaxOwnerLength, n)
	}
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("invalid owner %q: only letters, digits and inner hyphens are allowed", owner)
	}
	return nil
}

// ValidateRepoName checks a repository name (without the owner).
func ValidateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if n := utf8.RuneCountInString(name); n > MaxRepoLength {
		return fmt.Errorf("repository name exceeds maximum length of %d characters (got %d)", MaxRepoLength, n)
	}
	if name == "." || name == ".." || !repoPattern.MatchString(name) {
		return fmt.Errorf("invalid repository name %q", name)
	}
	return nil
}

// ParseRepo splits "owner/repo" and validates both halves.
func ParseRepo(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid repository %q: expected OWNER/REPO", s)
	}
	if err := ValidateOwner(owner); err != nil {
		return "", "", err
	}
	repo = strings.TrimSuffix(repo, ".git")
	if err := ValidateRepoName(repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}

// ValidateJSONPayload checks the size of a request body.
func ValidateJSONPayload(payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("JSON payload cannot be empty")
	}
	if len(payload) > MaxJSONPayload {
		return fmt.Errorf("JSON payload exceeds maximum size of %d bytes (got %d)", MaxJSONPayload, len(payload))
	}
	return nil
}

// ParseKeyValue splits a "key=value" flag argument. The value may be empty.
func ParseKeyValue(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid parameter %q: expected key=value", s)
	}
	return key, value, nil
}

// ParsePositiveInt parses a string as a positive integer such as an issue
// or milestone number. A leading "#" is accepted.
func ParsePositiveInt(s string, fieldName string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", fieldName, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", fieldName)
	}
	return n, nil
}
