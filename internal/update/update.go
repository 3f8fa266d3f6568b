package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/octoglue/octoglue/api"
)

const (
	// ReleaseOwner and ReleaseRepo name the repository whose latest
	// release is compared against the running version.
	ReleaseOwner = "octoglue"
	ReleaseRepo  = "octoglue"
	CheckTimeout = 5 * time.Second
)

type Release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Prerelease bool   `json:"prerelease"`
}

type CheckResult struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateURL       string `json:"update_url,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
}

// CheckForUpdate asks GitHub for the latest release through caller.
// Returns nil if the check fails - never blocks the CLI.
func CheckForUpdate(ctx context.Context, caller *api.Caller[*http.Response], currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" || caller == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	resp, err := caller.Repos().GetLatestRelease(ctx, ReleaseOwner, ReleaseRepo)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}
	if release.TagName == "" {
		return nil
	}

	return Compare(currentVersion, release)
}

// Compare builds a CheckResult for the running version against release.
// Versions that are not valid semver never report an update.
func Compare(currentVersion string, release Release) *CheckResult {
	current := normalizeVersion(currentVersion)
	latest := normalizeVersion(release.TagName)

	result := &CheckResult{
		CurrentVersion: currentVersion,
		LatestVersion:  strings.TrimPrefix(release.TagName, "v"),
		UpdateURL:      release.HTMLURL,
	}

	if semver.IsValid(current) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}

	return result
}

func normalizeVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
