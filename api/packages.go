package api

import (
	"context"
	"net/http"
)

func PackagesDeletePackageVersionForOrgURL(baseURL, org, packageType, packageName string, packageVersionID int64) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/orgs/").path(org).
		lit("/packages/").path(packageType).lit("/").path(packageName).
		lit("/versions/").path(packageVersionID)
	return finishURL("packages/delete-package-version-for-org", u)
}

func NewPackagesDeletePackageVersionForOrgRequest(baseURL, org, packageType, packageName string, packageVersionID int64, userAgent, accept string) (*Request, error) {
	url, err := PackagesDeletePackageVersionForOrgURL(baseURL, org, packageType, packageName, packageVersionID)
	if err != nil {
		return nil, err
	}
	return NewRequest("packages/delete-package-version-for-org", http.MethodDelete, url, userAgent, accept, nil)
}

// DeletePackageVersionForOrg deletes one version of an organization
// package. A public version with more than 5000 downloads cannot be
// deleted.
func (s PackagesService[R]) DeletePackageVersionForOrg(ctx context.Context, org, packageType, packageName string, packageVersionID int64) (R, error) {
	cfg := s.c.config
	req, err := NewPackagesDeletePackageVersionForOrgRequest(cfg.BaseURL, org, packageType, packageName, packageVersionID, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

type PackagesGetAllPackageVersionsForPackageOwnedByOrgQuery struct {
	Page    *int64
	PerPage *int64
	// State is "active" or "deleted".
	State *string
}

func PackagesGetAllPackageVersionsForPackageOwnedByOrgURL(baseURL, org, packageType, packageName string, q *PackagesGetAllPackageVersionsForPackageOwnedByOrgQuery) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/orgs/").path(org).
		lit("/packages/").path(packageType).lit("/").path(packageName).
		lit("/versions")
	if q != nil {
		u.query("page", q.Page).query("per_page", q.PerPage).query("state", q.State)
	}
	return finishURL("packages/get-all-package-versions-for-package-owned-by-org", u)
}

func NewPackagesGetAllPackageVersionsForPackageOwnedByOrgRequest(baseURL, org, packageType, packageName string, q *PackagesGetAllPackageVersionsForPackageOwnedByOrgQuery, userAgent, accept string) (*Request, error) {
	url, err := PackagesGetAllPackageVersionsForPackageOwnedByOrgURL(baseURL, org, packageType, packageName, q)
	if err != nil {
		return nil, err
	}
	return NewRequest("packages/get-all-package-versions-for-package-owned-by-org", http.MethodGet, url, userAgent, accept, nil)
}

func (s PackagesService[R]) GetAllPackageVersionsForPackageOwnedByOrg(ctx context.Context, org, packageType, packageName string, q *PackagesGetAllPackageVersionsForPackageOwnedByOrgQuery) (R, error) {
	cfg := s.c.config
	req, err := NewPackagesGetAllPackageVersionsForPackageOwnedByOrgRequest(cfg.BaseURL, org, packageType, packageName, q, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}

func PackagesRestorePackageVersionForUserURL(baseURL, username, packageType, packageName string, packageVersionID int64) (string, error) {
	u := newURLBuilder(baseURL).
		lit("/users/").path(username).
		lit("/packages/").path(packageType).lit("/").path(packageName).
		lit("/versions/").path(packageVersionID).lit("/restore")
	return finishURL("packages/restore-package-version-for-user", u)
}

func NewPackagesRestorePackageVersionForUserRequest(baseURL, username, packageType, packageName string, packageVersionID int64, userAgent, accept string) (*Request, error) {
	url, err := PackagesRestorePackageVersionForUserURL(baseURL, username, packageType, packageName, packageVersionID)
	if err != nil {
		return nil, err
	}
	return NewRequest("packages/restore-package-version-for-user", http.MethodPost, url, userAgent, accept, nil)
}

// RestorePackageVersionForUser restores a version deleted within the last
// 30 days.
func (s PackagesService[R]) RestorePackageVersionForUser(ctx context.Context, username, packageType, packageName string, packageVersionID int64) (R, error) {
	cfg := s.c.config
	req, err := NewPackagesRestorePackageVersionForUserRequest(cfg.BaseURL, username, packageType, packageName, packageVersionID, cfg.UserAgent, cfg.Accept)
	return s.c.do(ctx, req, err)
}
