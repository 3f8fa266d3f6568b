package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/debug"
	"github.com/octoglue/octoglue/internal/iocontext"
	"github.com/octoglue/octoglue/internal/ratelimit"
	"github.com/octoglue/octoglue/internal/validation"
)

func newMarkdownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Render markdown through the API",
	}
	cmd.AddCommand(newMarkdownRenderCmd())
	return cmd
}

func newMarkdownRenderCmd() *cobra.Command {
	var (
		mode    string
		refCtx  string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a markdown document to HTML",
		Long: `Render a markdown document to HTML. The document is read from the file
argument, or from stdin when the argument is "-" or missing.`,
		Example: `  octoglue markdown render README.md
  echo "Fixes #1" | octoglue markdown render --mode gfm --context octocat/hello-world`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if mode != "" && mode != "markdown" && mode != "gfm" {
				return fmt.Errorf("invalid --mode %q: use markdown or gfm", mode)
			}
			if refCtx != "" && mode != "gfm" {
				return fmt.Errorf("--context requires --mode gfm")
			}

			ctx := cmdContext(cmd)
			var text []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				text, err = iocontext.ReadInput(ctx, validation.MaxJSONPayload)
			} else {
				text, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read markdown: %w", err)
			}

			body := &api.MarkdownRenderBody{Text: string(text)}
			if mode != "" {
				body.Mode = api.String(mode)
			}
			if refCtx != "" {
				body.Context = api.String(refCtx)
			}

			caller, err := getCaller(ctx)
			if err != nil {
				return err
			}
			resp, err := checkResponse(caller.Markdown().Render(ctx, body))
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if debug.IsEnabled(ctx) {
				info := ratelimit.Parse(resp.Header, time.Now())
				slog.DebugContext(ctx, "rate limit", "info", info.Meta())
			}

			html, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read rendered HTML: %w", err)
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]string{"html": string(html)})
			}
			_, err = cmdOut(cmd).Write(html)
			return err
		}),
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Rendering mode: markdown|gfm")
	cmd.Flags().StringVar(&refCtx, "context", "", "owner/repo used to resolve references in gfm mode")
	return cmd
}
