package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)

			var result *update.CheckResult
			if check {
				// The check fails silently: a broken network must not break version.
				if caller, err := getCaller(ctx); err == nil {
					result = update.CheckForUpdate(ctx, caller, version)
				}
			}

			if isJSON(cmd) {
				out := map[string]any{
					"version":     version,
					"api_version": api.Version,
					"go":          runtime.Version(),
				}
				if result != nil {
					out["update"] = result
				}
				return printJSON(cmd, out)
			}

			_, _ = fmt.Fprintf(cmdOut(cmd), "octoglue version %s (%s)\n", version, api.DefaultUserAgent)
			if result != nil && result.UpdateAvailable {
				infof(cmd, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
				infof(cmd, "Download: %s\n", result.UpdateURL)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
