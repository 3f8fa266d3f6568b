package api

// Service accessors group Caller operations by API tag.

type ActionsService[R any] struct{ c *Caller[R] }

type ActivityService[R any] struct{ c *Caller[R] }

type AppsService[R any] struct{ c *Caller[R] }

type ChecksService[R any] struct{ c *Caller[R] }

type CodeScanningService[R any] struct{ c *Caller[R] }

type CodespacesService[R any] struct{ c *Caller[R] }

type EnterpriseAdminService[R any] struct{ c *Caller[R] }

type GistsService[R any] struct{ c *Caller[R] }

type GitService[R any] struct{ c *Caller[R] }

type IssuesService[R any] struct{ c *Caller[R] }

type MarkdownService[R any] struct{ c *Caller[R] }

type MigrationsService[R any] struct{ c *Caller[R] }

type OAuthAuthorizationsService[R any] struct{ c *Caller[R] }

type OrgsService[R any] struct{ c *Caller[R] }

type PackagesService[R any] struct{ c *Caller[R] }

type PullsService[R any] struct{ c *Caller[R] }

type RateLimitService[R any] struct{ c *Caller[R] }

type ReposService[R any] struct{ c *Caller[R] }

type SCIMService[R any] struct{ c *Caller[R] }

type SearchService[R any] struct{ c *Caller[R] }

type SecretScanningService[R any] struct{ c *Caller[R] }

type TeamsService[R any] struct{ c *Caller[R] }

func (c *Caller[R]) Actions() ActionsService[R] {
	return ActionsService[R]{c}
}

func (c *Caller[R]) Activity() ActivityService[R] {
	return ActivityService[R]{c}
}

func (c *Caller[R]) Apps() AppsService[R] {
	return AppsService[R]{c}
}

func (c *Caller[R]) Checks() ChecksService[R] {
	return ChecksService[R]{c}
}

func (c *Caller[R]) CodeScanning() CodeScanningService[R] {
	return CodeScanningService[R]{c}
}

func (c *Caller[R]) Codespaces() CodespacesService[R] {
	return CodespacesService[R]{c}
}

func (c *Caller[R]) EnterpriseAdmin() EnterpriseAdminService[R] {
	return EnterpriseAdminService[R]{c}
}

func (c *Caller[R]) Gists() GistsService[R] {
	return GistsService[R]{c}
}

func (c *Caller[R]) Git() GitService[R] {
	return GitService[R]{c}
}

func (c *Caller[R]) Issues() IssuesService[R] {
	return IssuesService[R]{c}
}

func (c *Caller[R]) Markdown() MarkdownService[R] {
	return MarkdownService[R]{c}
}

func (c *Caller[R]) Migrations() MigrationsService[R] {
	return MigrationsService[R]{c}
}

func (c *Caller[R]) OAuthAuthorizations() OAuthAuthorizationsService[R] {
	return OAuthAuthorizationsService[R]{c}
}

func (c *Caller[R]) Orgs() OrgsService[R] {
	return OrgsService[R]{c}
}

func (c *Caller[R]) Packages() PackagesService[R] {
	return PackagesService[R]{c}
}

func (c *Caller[R]) Pulls() PullsService[R] {
	return PullsService[R]{c}
}

func (c *Caller[R]) RateLimit() RateLimitService[R] {
	return RateLimitService[R]{c}
}

func (c *Caller[R]) Repos() ReposService[R] {
	return ReposService[R]{c}
}

func (c *Caller[R]) SCIM() SCIMService[R] {
	return SCIMService[R]{c}
}

func (c *Caller[R]) Search() SearchService[R] {
	return SearchService[R]{c}
}

func (c *Caller[R]) SecretScanning() SecretScanningService[R] {
	return SecretScanningService[R]{c}
}

func (c *Caller[R]) Teams() TeamsService[R] {
	return TeamsService[R]{c}
}
