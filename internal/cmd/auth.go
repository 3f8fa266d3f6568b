package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/config"
	"github.com/octoglue/octoglue/internal/iocontext"
	"github.com/octoglue/octoglue/internal/validation"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored credentials",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthListCmd())
	cmd.AddCommand(newAuthSwitchCmd())
	return cmd
}

// rateLimitResponse is the body of GET /rate_limit.
type rateLimitResponse struct {
	Resources map[string]rateLimitResource `json:"resources"`
}

type rateLimitResource struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Used      int   `json:"used"`
	Reset     int64 `json:"reset"`
}

func fetchRateLimit(ctx context.Context, caller *api.Caller[*http.Response]) (*rateLimitResponse, error) {
	var rl rateLimitResponse
	err := newPager(caller).Retry(ctx, func(ctx context.Context) error {
		resp, err := caller.RateLimit().Get(ctx)
		_, err = decodeResponse(resp, err, &rl)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rl, nil
}

func newAuthLoginCmd() *cobra.Command {
	var (
		token      string
		withToken  bool
		user       string
		appID      string
		appKey     string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials in the system keyring",
		Long: `Store credentials for the GitHub API in the system keyring.

Supported credentials:
  --token             personal access or installation token
  --user --token      basic authentication
  --app-id --app-key  GitHub App, signed as a short-lived JWT

The credentials are checked against /rate_limit before they are saved,
unless --skip-verify is set.`,
		Example: `  octoglue auth login --token ghp_xxx
  gh auth token | octoglue auth login --with-token
  octoglue auth login --app-id 12345 --app-key ./app.pem --profile my-app
  octoglue auth login --token xxx --base-url https://ghe.example.com/api/v3 --profile ghe`,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)

			if withToken {
				if token != "" {
					return fmt.Errorf("--token and --with-token are mutually exclusive")
				}
				scanner := bufio.NewScanner(iocontext.GetIO(ctx).In)
				if scanner.Scan() {
					token = strings.TrimSpace(scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read token from stdin: %w", err)
				}
			}

			// The profile is bound to the API root in use, e.g. a GHES host.
			p := config.Profile{BaseURL: flags.BaseURL}
			if p.BaseURL == "" {
				p.BaseURL = flags.env.BaseURL
			}
			switch {
			case appID != "" || appKey != "":
				if appID == "" || appKey == "" {
					return fmt.Errorf("--app-id and --app-key must be used together")
				}
				if token != "" {
					return fmt.Errorf("--token cannot be combined with --app-id")
				}
				if _, err := os.Stat(appKey); err != nil {
					return fmt.Errorf("invalid --app-key: %w", err)
				}
				p.AuthKind = config.AuthApp
				p.AppID = appID
				p.AppKeyPath = appKey
			case token == "":
				return fmt.Errorf("a token is required: use --token, --with-token or --app-id/--app-key")
			case user != "":
				p.AuthKind = config.AuthBasic
				p.User = user
				p.Token = token
			default:
				p.AuthKind = config.AuthToken
				p.Token = token
			}
			if p.BaseURL != "" {
				normalized, err := validation.NormalizeBaseURL(p.BaseURL)
				if err != nil {
					return fmt.Errorf("invalid --base-url: %w", err)
				}
				p.BaseURL = normalized
			}

			name := flags.Profile
			if name == "" {
				name = "default"
			}

			if flags.DryRun {
				infof(cmd, "[DRY-RUN] Would save profile %q (%s) for %s\n", name, p.AuthKind, displayBaseURL(p.BaseURL))
				return nil
			}

			if !skipVerify {
				factory := newClientFactory()
				caller, err := factory.callerFor(ctx, config.ClientConfig{
					Profile:    name,
					BaseURL:    p.BaseURL,
					AuthKind:   p.AuthKind,
					Token:      p.Token,
					User:       p.User,
					AppID:      p.AppID,
					AppKeyPath: p.AppKeyPath,
				})
				if err != nil {
					return err
				}
				if _, err := fetchRateLimit(ctx, caller); err != nil {
					return fmt.Errorf("credential check failed: %w", err)
				}
			}

			if err := config.SaveProfile(name, p); err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"profile":   name,
					"auth_kind": p.AuthKind,
					"base_url":  displayBaseURL(p.BaseURL),
					"verified":  !skipVerify,
				})
			}
			_, _ = fmt.Fprintf(cmdOut(cmd), "Logged in to %s as profile %q (%s)\n", displayBaseURL(p.BaseURL), name, p.AuthKind)
			return nil
		}),
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token")
	cmd.Flags().BoolVar(&withToken, "with-token", false, "Read the token from stdin")
	cmd.Flags().StringVar(&user, "user", "", "Username for basic authentication")
	cmd.Flags().StringVar(&appID, "app-id", "", "GitHub App id")
	cmd.Flags().StringVar(&appKey, "app-key", "", "Path to the GitHub App private key (PEM)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Save without checking the credentials")
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active credentials and rate limits",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			factory := newClientFactory()
			cfg, err := factory.resolve()
			if err != nil {
				return err
			}
			caller, err := factory.callerFor(ctx, cfg)
			if err != nil {
				return err
			}
			rl, err := fetchRateLimit(ctx, caller)
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"profile":    cfg.Profile,
					"base_url":   displayBaseURL(cfg.BaseURL),
					"auth_kind":  cfg.AuthKind,
					"user":       cfg.User,
					"rate_limit": rl.Resources,
				})
			}

			w := newTabWriterFromCmd(cmd)
			_, _ = fmt.Fprintf(w, "PROFILE\t%s\n", cfg.Profile)
			_, _ = fmt.Fprintf(w, "API\t%s\n", displayBaseURL(cfg.BaseURL))
			_, _ = fmt.Fprintf(w, "AUTH\t%s\n", cfg.AuthKind)
			if cfg.User != "" {
				_, _ = fmt.Fprintf(w, "USER\t%s\n", cfg.User)
			}
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "RESOURCE\tUSED\tREMAINING\tLIMIT\tRESET")
			names := make([]string, 0, len(rl.Resources))
			for name := range rl.Resources {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				r := rl.Resources[name]
				reset := "-"
				if r.Reset > 0 {
					reset = time.Unix(r.Reset, 0).Local().Format(time.Kitchen)
				}
				_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", name, r.Used, r.Remaining, r.Limit, reset)
			}
			return w.Flush()
		}),
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			name := flags.Profile
			if name == "" {
				current, err := config.CurrentProfile()
				if err != nil {
					return err
				}
				name = current
			}
			if flags.DryRun {
				infof(cmd, "[DRY-RUN] Would remove profile %q\n", name)
				return nil
			}
			if err := config.DeleteProfile(name); err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]string{"removed": name})
			}
			_, _ = fmt.Fprintf(cmdOut(cmd), "Removed profile %q\n", name)
			return nil
		}),
	}
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			names, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				return err
			}

			type row struct {
				Name     string `json:"name"`
				Current  bool   `json:"current"`
				AuthKind string `json:"auth_kind,omitempty"`
				BaseURL  string `json:"base_url"`
			}
			rows := make([]row, 0, len(names))
			for _, name := range names {
				p, err := config.LoadProfile(name)
				if err != nil {
					continue
				}
				rows = append(rows, row{Name: name, Current: name == current, AuthKind: p.AuthKind, BaseURL: displayBaseURL(p.BaseURL)})
			}

			if isJSON(cmd) {
				return printJSON(cmd, rows)
			}
			w := newTabWriterFromCmd(cmd)
			_, _ = fmt.Fprintln(w, "\tPROFILE\tAUTH\tAPI")
			for _, r := range rows {
				marker := ""
				if r.Current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, r.Name, r.AuthKind, r.BaseURL)
			}
			return w.Flush()
		}),
	}
}

func newAuthSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile>",
		Short: "Make a stored profile the current one",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, err := config.LoadProfile(name); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
			if err := config.SetCurrentProfile(name); err != nil {
				return err
			}
			infof(cmd, "Switched to profile %q\n", name)
			return nil
		}),
	}
}

func displayBaseURL(baseURL string) string {
	if baseURL == "" {
		return api.DefaultBaseURL
	}
	return baseURL
}
