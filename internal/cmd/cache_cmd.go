package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local repository name cache",
		Long: `Repository names listed by "repos list" are cached for five minutes so
that commands taking a repository accept a bare name. Set
OCTOGLUE_NO_CACHE=1 to disable the cache and OCTOGLUE_CACHE_DIR to move it.`,
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached data",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if dir == "" {
				return fmt.Errorf("could not determine cache directory")
			}
			if flags.DryRun {
				infof(cmd, "[DRY-RUN] Would remove %d cache files from %s\n", len(cache.Files(dir)), dir)
				return nil
			}
			n := cache.ClearAll(dir)
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"dir": dir, "removed": n})
			}
			_, _ = fmt.Fprintf(cmdOut(cmd), "Cache cleared: %s (%d files)\n", dir, n)
			return nil
		}),
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the cache directory and its files",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if dir == "" {
				return fmt.Errorf("could not determine cache directory")
			}

			type file struct {
				Name string `json:"name"`
				Size int64  `json:"size"`
			}
			files := []file{}
			for _, e := range cache.Files(dir) {
				info, err := e.Info()
				if err != nil {
					continue
				}
				files = append(files, file{Name: e.Name(), Size: info.Size()})
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"dir": dir, "files": files})
			}
			out := cmdOut(cmd)
			_, _ = fmt.Fprintln(out, dir)
			for _, f := range files {
				_, _ = fmt.Fprintf(out, "  %s (%d bytes)\n", f.Name, f.Size)
			}
			return nil
		}),
	}
}
