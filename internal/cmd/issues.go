package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/pager"
	"github.com/octoglue/octoglue/internal/timeexpr"
	"github.com/octoglue/octoglue/internal/validation"
)

func newIssuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "List and create issues",
	}
	cmd.AddCommand(newIssuesListCmd())
	cmd.AddCommand(newIssuesCreateCmd())
	return cmd
}

type issueSummary struct {
	Number     int64  `json:"number"`
	Title      string `json:"title"`
	State      string `json:"state"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	User struct {
		Login string `json:"login"`
	} `json:"user"`
}

func newIssuesListCmd() *cobra.Command {
	var (
		filter    string
		state     string
		labels    []string
		since     string
		sortField string
		direction string
		perPage   int64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues assigned to the authenticated user",
		Long: `List issues across every repository visible to the authenticated user,
including owned, member and organization repositories.`,
		Example: `  octoglue issues list
  octoglue issues list --filter created --state all --labels bug,ui
  octoglue issues list --since "2d ago"
  octoglue issues list --sort updated --direction desc --limit 20 -o json`,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if direction != "" && sortField == "" {
				return fmt.Errorf("--direction requires --sort")
			}
			if direction != "" && direction != "asc" && direction != "desc" {
				return fmt.Errorf("invalid --direction %q: use asc or desc", direction)
			}
			if perPage < 1 || perPage > 100 {
				return fmt.Errorf("--per-page must be between 1 and 100")
			}
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}

			var f api.IssueFilter
			if filter != "" {
				f.Filter = api.String(filter)
			}
			if state != "" {
				f.State = api.String(state)
			}
			if len(labels) > 0 {
				f.Labels = api.String(strings.Join(labels, ","))
			}
			if since != "" {
				t, err := timeexpr.ParsePast(since, time.Now())
				if err != nil {
					return fmt.Errorf("invalid --since: %w", err)
				}
				f.Since = api.String(timeexpr.ISO8601(t))
			}
			sort := api.SortDefault()
			switch {
			case sortField == "":
			case direction == "asc":
				sort = api.Ascending(sortField)
			default:
				sort = api.Descending(sortField)
			}

			ctx := cmdContext(cmd)
			caller, err := getCaller(ctx)
			if err != nil {
				return err
			}

			var issues []json.RawMessage
			errLimit := errors.New("limit reached")
			err = pager.Each(ctx, newPager(caller), func(ctx context.Context, page int) ([]json.RawMessage, error) {
				q := &api.IssuesListQuery{PerPage: api.Int64(perPage), Page: api.Int64(int64(page))}
				q.SetFilter(f)
				q.SetSort(sort)
				var items []json.RawMessage
				resp, err := caller.Issues().List(ctx, q)
				_, err = decodeResponse(resp, err, &items)
				return items, err
			}, func(items []json.RawMessage) error {
				issues = append(issues, items...)
				if limit > 0 && len(issues) >= limit {
					issues = issues[:limit]
					return errLimit
				}
				return nil
			})
			if err != nil && !errors.Is(err, errLimit) {
				return err
			}

			if isJSON(cmd) {
				if issues == nil {
					issues = []json.RawMessage{}
				}
				return printJSON(cmd, issues)
			}

			w := newTabWriterFromCmd(cmd)
			_, _ = fmt.Fprintln(w, "REPO\tNUMBER\tSTATE\tAUTHOR\tTITLE")
			for _, raw := range issues {
				var s issueSummary
				if err := json.Unmarshal(raw, &s); err != nil {
					return fmt.Errorf("failed to decode issue: %w", err)
				}
				_, _ = fmt.Fprintf(w, "%s\t#%d\t%s\t%s\t%s\n", s.Repository.FullName, s.Number, s.State, s.User.Login, s.Title)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Which issues: assigned|created|mentioned|subscribed|repos|all")
	cmd.Flags().StringVar(&state, "state", "", "Issue state: open|closed|all")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "Only issues with all of these labels (comma-separated)")
	cmd.Flags().StringVar(&since, "since", "", "Only issues updated since: 2d ago, yesterday, 2024-01-31 or RFC3339")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort by: created|updated|comments")
	cmd.Flags().StringVar(&direction, "direction", "", "Sort direction: asc|desc (default desc)")
	cmd.Flags().Int64Var(&perPage, "per-page", pager.DefaultPerPage, "Results per page (1-100)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many issues (0 for all)")
	return cmd
}

func newIssuesCreateCmd() *cobra.Command {
	var (
		title     string
		body      string
		labels    []string
		assignees []string
		milestone string
	)

	cmd := &cobra.Command{
		Use:   "create <repo>",
		Short: "Create an issue",
		Example: `  octoglue issues create octocat/hello-world --title "Broken link" --label docs
  octoglue issues create octocat/hello-world --title "Triage" --milestone none`,
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}

			issue := &api.IssuesCreateBody{Title: title, Assignees: assignees}
			if cmd.Flags().Changed("body") {
				issue.Body = api.String(body)
			}
			for _, l := range labels {
				issue.Labels = append(issue.Labels, l)
			}
			switch {
			case milestone == "":
			case strings.EqualFold(milestone, "none"):
				issue.Milestone = api.Null[any]()
			default:
				n, err := validation.ParsePositiveInt(milestone, "milestone")
				if err != nil {
					return err
				}
				issue.Milestone = api.NullableOf[any](n)
			}

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

			// Creating is not idempotent, so the request is sent once.
			var created json.RawMessage
			resp, err := caller.Issues().Create(ctx, owner, repo, issue)
			if _, err := decodeResponse(resp, err, &created); err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, created)
			}
			var s struct {
				Number  int64  `json:"number"`
				HTMLURL string `json:"html_url"`
			}
			if err := json.Unmarshal(created, &s); err != nil {
				return fmt.Errorf("failed to decode issue: %w", err)
			}
			_, _ = fmt.Fprintf(cmdOut(cmd), "Created issue #%d: %s\n", s.Number, s.HTMLURL)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Issue title (required)")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Issue body")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Label to add (repeatable)")
	cmd.Flags().StringSliceVarP(&assignees, "assignee", "a", nil, "Login to assign (repeatable)")
	cmd.Flags().StringVar(&milestone, "milestone", "", `Milestone number, or "none" to send null`)
	return cmd
}
