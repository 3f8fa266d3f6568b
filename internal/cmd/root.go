package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/octoglue/octoglue/debug"
	"github.com/octoglue/octoglue/internal/config"
	"github.com/octoglue/octoglue/internal/dryrun"
	"github.com/octoglue/octoglue/internal/iocontext"
	"github.com/octoglue/octoglue/internal/outfmt"
	"github.com/octoglue/octoglue/internal/validation"
)

const defaultTimeout = 30 * time.Second

// rootFlags holds global CLI flags
type rootFlags struct {
	Output       string
	Debug        bool
	DryRun       bool
	Quiet        bool
	AllowPrivate bool
	JQ           string
	Timeout      time.Duration
	MaxWait      time.Duration
	BaseURL      string
	Backend      string
	Accept       string
	Profile      string

	// env is read once per Execute, after .env files are loaded.
	env config.Env
}

// flags holds the global command flags. This is package-level mutable state
// that MUST be reset at the start of every Execute() call. Tests depend on
// this reset to get clean state.
var flags = defaultFlags()

func defaultFlags() rootFlags {
	return rootFlags{
		Output:  "text",
		Timeout: defaultTimeout,
		MaxWait: 15 * time.Minute,
		Backend: backendNetHTTP,
	}
}

func parseBoolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	flags = defaultFlags()

	root := &cobra.Command{
		Use:   "octoglue",
		Short: "Call the GitHub REST API from the command line",
		Long: strings.TrimSpace(`
octoglue sends GitHub REST API requests through one of three backends
(net/http, go-retryablehttp or an async wrapper) and prints the results.

Credentials come from, in order: GITHUB_TOKEN, the GitHub App variables
GITHUB_APP_ID and GITHUB_APP_PRIVATE_KEY_PATH, then the profile saved by
"octoglue auth login". Without any of them requests are anonymous.
`),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true, // We provide our own did-you-mean via enhanceUnknownError
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := config.LoadDotEnv(); err != nil {
				return &configError{err: err}
			}
			env, err := config.ReadEnv()
			if err != nil {
				return &configError{err: err}
			}
			flags.env = env

			if !cmd.Flags().Changed("output") && env.Output != "" {
				flags.Output = env.Output
			}
			if !cmd.Flags().Changed("backend") && env.Backend != "" {
				flags.Backend = env.Backend
			}
			if err := validateBackend(flags.Backend); err != nil {
				return err
			}
			if flags.Timeout < 0 {
				return fmt.Errorf("--timeout must be >= 0")
			}
			if flags.MaxWait < 0 {
				return fmt.Errorf("--max-wait must be >= 0")
			}

			// --jq needs JSON to filter
			if flags.JQ != "" && flags.Output == "text" {
				if cmd.Flags().Changed("output") {
					return fmt.Errorf("--jq requires --output json or jsonl")
				}
				flags.Output = "json"
			}
			mode, err := outfmt.Parse(flags.Output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			if flags.JQ != "" {
				ctx = outfmt.WithQuery(ctx, flags.JQ)
			}

			ioStreams := iocontext.GetIO(ctx)
			ctx = iocontext.WithIO(ctx, ioStreams)
			cmd.SetOut(ioStreams.Out)
			cmd.SetErr(ioStreams.ErrOut)

			if flags.AllowPrivate || parseBoolEnv("OCTOGLUE_ALLOW_PRIVATE") {
				validation.SetAllowPrivate(true)
			}

			debug.SetupLogger(flags.Debug)
			ctx = debug.WithDebug(ctx, flags.Debug)
			ctx = dryrun.WithDryRun(ctx, flags.DryRun)

			cmd.SetContext(ctx)
			return nil
		},
	}

	streams := iocontext.GetIO(ctx)
	root.SetContext(ctx)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl (env OCTOGLUE_OUTPUT)")
	pf.StringVar(&flags.JQ, "jq", "", "jq expression to filter JSON output")
	pf.BoolVar(&flags.Debug, "debug", false, "Log requests and rate limits to stderr")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Print the request instead of sending it")
	pf.StringVar(&flags.BaseURL, "base-url", "", "API root, e.g. https://ghe.example.com/api/v3 (env GITHUB_API_URL)")
	pf.StringVar(&flags.Backend, "backend", flags.Backend, "HTTP backend: nethttp|retryable|async (env OCTOGLUE_BACKEND)")
	pf.StringVar(&flags.Accept, "accept", "", "Media type to request instead of application/vnd.github.v3+json")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g. 30s, 2m; 0 disables)")
	pf.DurationVar(&flags.MaxWait, "max-wait", flags.MaxWait, "Longest rate-limit wait before giving up (0 waits as long as needed)")
	pf.StringVar(&flags.Profile, "profile", "", "Credential profile to use (env OCTOGLUE_PROFILE)")
	pf.BoolVar(&flags.AllowPrivate, "allow-private", false, "Allow private/localhost base URLs")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress informational messages")

	flagAlias(pf, "dry-run", "dr")
	flagAlias(pf, "output", "out")

	root.AddCommand(newReposCmd())
	root.AddCommand(newIssuesCmd())
	root.AddCommand(newMarkdownCmd())
	root.AddCommand(newCallCmd())
	root.AddCommand(newAPICmd())
	root.AddCommand(newAuthCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	targetCmd, err := root.ExecuteC()
	if err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			enhanced := enhanceUnknownError(err, root, targetCmd)
			_, _ = fmt.Fprintln(root.ErrOrStderr(), enhanced)
		}
		return err
	}
	return nil
}

// enhanceUnknownError adds "did you mean?" suggestions to unknown command/flag errors.
// targetCmd is the command Cobra resolved before the error (may be root itself).
func enhanceUnknownError(err error, root *cobra.Command, targetCmd *cobra.Command) string {
	msg := err.Error()

	if strings.Contains(msg, "unknown command") {
		unknown := extractQuoted(msg)
		if unknown != "" {
			parent := root
			if targetCmd != nil {
				parent = targetCmd
			}
			var names []string
			for _, c := range parent.Commands() {
				if c.IsAvailableCommand() || c.Name() == "help" {
					names = append(names, c.Name())
					names = append(names, c.Aliases...)
				}
			}
			if suggestion := suggestCommand(unknown, names); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?", msg, suggestion)
			}
		}
	}

	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag") {
		unknown := extractFlag(msg)
		if unknown != "" {
			seen := make(map[string]bool)
			var flagNames []string
			addFlags := func(fs *pflag.FlagSet) {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Hidden {
						return
					}
					for _, name := range []string{"--" + f.Name, "-" + f.Shorthand} {
						if name == "-" || seen[name] {
							continue
						}
						seen[name] = true
						flagNames = append(flagNames, name)
					}
				})
			}
			helpCmd := "octoglue --help"
			if targetCmd != nil {
				addFlags(targetCmd.Flags())
				addFlags(targetCmd.InheritedFlags())
				helpCmd = targetCmd.CommandPath() + " --help"
			} else {
				addFlags(root.PersistentFlags())
			}
			if suggestion := suggestFlag(unknown, flagNames); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?\nRun %q to see supported flags.", msg, suggestion, helpCmd)
			}
			return fmt.Sprintf("%s\n\nRun %q to see supported flags.", msg, helpCmd)
		}
	}

	return msg
}

// extractQuoted extracts the first double-quoted substring from s.
func extractQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// extractFlag extracts a flag name (e.g., "--foo") from an error message.
func extractFlag(s string) string {
	idx := strings.Index(s, "--")
	if idx < 0 {
		// "unknown shorthand flag: 'a' in -a"
		idx = strings.LastIndex(s, " -")
		if idx < 0 {
			return ""
		}
		rest := strings.TrimSpace(s[idx+1:])
		if end := strings.IndexByte(rest, ' '); end >= 0 {
			rest = rest[:end]
		}
		rest = strings.TrimRight(rest, ".,;:!?\"'")
		if strings.HasPrefix(rest, "-") && len(rest) > 1 {
			return rest
		}
		return ""
	}
	rest := s[idx:]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimRight(rest[:end], ".,;:!?\"'")
}
