package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/pager"
	"github.com/octoglue/octoglue/internal/validation"
)

const defaultReposConcurrency = 5

func newReposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"repo"},
		Short:   "Work with repositories",
	}
	cmd.AddCommand(newReposListCmd())
	cmd.AddCommand(newReposLatestReleaseCmd())
	return cmd
}

// repoSummary is the subset of a repository object shown in text output.
type repoSummary struct {
	FullName    string `json:"full_name"`
	Fork        bool   `json:"fork"`
	Description string `json:"description"`
}

type userRepos struct {
	user  string
	repos []json.RawMessage
}

func newReposListCmd() *cobra.Command {
	var (
		perPage     int64
		concurrency int
		repoType    string
		sortField   string
		direction   string
	)

	cmd := &cobra.Command{
		Use:   "list [user...]",
		Short: "List public repositories of one or more users",
		Long: `List every public repository of each user, following pagination.

Users are fetched concurrently. Without arguments the user comes from
GITHUB_USER or the stored profile.`,
		Example: `  octoglue repos list octocat
  octoglue repos list octocat defunkt --type owner -o json
  GITHUB_USER=octocat octoglue repos list`,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if perPage < 1 || perPage > 100 {
				return fmt.Errorf("--per-page must be between 1 and 100")
			}
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			if direction != "" && sortField == "" {
				return fmt.Errorf("--direction requires --sort")
			}
			if direction != "" && direction != "asc" && direction != "desc" {
				return fmt.Errorf("invalid --direction %q: use asc or desc", direction)
			}

			factory := newClientFactory()
			users := args
			if len(users) == 0 {
				cfg, err := factory.resolve()
				if err != nil {
					return err
				}
				if cfg.User == "" {
					return fmt.Errorf("user is required: pass it as an argument or set GITHUB_USER")
				}
				users = []string{cfg.User}
			}
			for _, u := range users {
				if err := validation.ValidateOwner(u); err != nil {
					return err
				}
			}

			ctx := cmdContext(cmd)
			caller, err := factory.caller(ctx)
			if err != nil {
				return err
			}

			sort := api.SortDefault()
			if sortField != "" {
				if direction == "desc" {
					sort = api.Descending(sortField)
				} else {
					sort = api.Ascending(sortField)
				}
			}

			results, err := listUsersRepos(ctx, caller, users, concurrency, func(page int) *api.ReposListForUserQuery {
				q := &api.ReposListForUserQuery{PerPage: api.Int64(perPage), Page: api.Int64(int64(page))}
				if repoType != "" {
					q.Type = api.String(repoType)
				}
				q.SetSort(sort)
				return q
			})
			if err != nil {
				return err
			}
			if repoType == "" {
				baseURL := caller.Configuration().BaseURL
				for _, r := range results {
					cacheRepoNames(baseURL, r.user, r.repos)
				}
			}

			if isJSON(cmd) {
				all := []json.RawMessage{}
				for _, r := range results {
					all = append(all, r.repos...)
				}
				return printJSON(cmd, all)
			}

			out := cmdOut(cmd)
			for _, r := range results {
				for _, raw := range r.repos {
					var s repoSummary
					if err := json.Unmarshal(raw, &s); err != nil {
						return fmt.Errorf("failed to decode repository: %w", err)
					}
					line := s.FullName
					if s.Fork {
						line += " (fork)"
					}
					if s.Description != "" {
						line += ": " + s.Description
					}
					_, _ = fmt.Fprintln(out, line)
				}
			}
			return nil
		}),
	}

	cmd.Flags().Int64Var(&perPage, "per-page", pager.DefaultPerPage, "Results per page (1-100)")
	cmd.Flags().IntVar(&concurrency, "concurrency", defaultReposConcurrency, "Users fetched at once")
	cmd.Flags().StringVar(&repoType, "type", "", "Repository type: all|owner|member")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort by: created|updated|pushed|full_name")
	cmd.Flags().StringVar(&direction, "direction", "", "Sort direction: asc|desc")
	return cmd
}

// listUsersRepos fetches every page of each user's repositories, at most
// concurrency users at a time. Results keep the order of users.
func listUsersRepos(ctx context.Context, caller *api.Caller[*http.Response], users []string, concurrency int, query func(page int) *api.ReposListForUserQuery) ([]userRepos, error) {
	results := make([]userRepos, len(users))
	sem := semaphore.NewWeighted(int64(concurrency))
	p := newPager(caller)

	g, gctx := errgroup.WithContext(ctx)
	for i, user := range users {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			repos, err := pager.All(gctx, p, func(ctx context.Context, page int) ([]json.RawMessage, error) {
				var items []json.RawMessage
				resp, err := caller.Repos().ListForUser(ctx, user, query(page))
				_, err = decodeResponse(resp, err, &items)
				return items, err
			})
			if err != nil {
				return fmt.Errorf("list repositories of %s: %w", user, err)
			}
			results[i] = userRepos{user: user, repos: repos}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func newReposLatestReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest-release <repo>",
		Short: "Show the latest published release",
		Long: `Show the latest published release of a repository.

The repository is OWNER/REPO, a GitHub URL, or the bare name of one of
GITHUB_USER's repositories.`,
		Example: `  octoglue repos latest-release cli/cli
  octoglue repos latest-release https://github.com/cli/cli
  GITHUB_USER=octocat octoglue repos latest-release hello-world`,
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			factory := newClientFactory()
			caller, err := factory.caller(ctx)
			if err != nil {
				return err
			}
			owner, repo, err := resolveRepo(ctx, factory, caller, args[0])
			if err != nil {
				return err
			}

			var release json.RawMessage
			err = newPager(caller).Retry(ctx, func(ctx context.Context) error {
				resp, err := caller.Repos().GetLatestRelease(ctx, owner, repo)
				_, err = decodeResponse(resp, err, &release)
				return err
			})
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, release)
			}
			var r struct {
				TagName     string `json:"tag_name"`
				Name        string `json:"name"`
				PublishedAt string `json:"published_at"`
				HTMLURL     string `json:"html_url"`
			}
			if err := json.Unmarshal(release, &r); err != nil {
				return fmt.Errorf("failed to decode release: %w", err)
			}
			w := newTabWriterFromCmd(cmd)
			_, _ = fmt.Fprintf(w, "TAG\t%s\n", r.TagName)
			_, _ = fmt.Fprintf(w, "NAME\t%s\n", r.Name)
			_, _ = fmt.Fprintf(w, "PUBLISHED\t%s\n", r.PublishedAt)
			_, _ = fmt.Fprintf(w, "URL\t%s\n", r.HTMLURL)
			return w.Flush()
		}),
	}
}
