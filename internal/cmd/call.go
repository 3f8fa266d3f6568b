package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/catalog"
	"github.com/octoglue/octoglue/internal/resolve"
	"github.com/octoglue/octoglue/internal/validation"
)

func newCallCmd() *cobra.Command {
	var (
		params []string
		body   string
		list   bool
		search string
	)

	cmd := &cobra.Command{
		Use:   "call <operation-id>",
		Short: "Call any catalogued operation by id",
		Long: `Call an operation from the built-in catalog by its id, e.g.
"repos/get-content" or "issues/create". Path and query parameters are
given with -p name=value; a JSON body with --body.

Use --list to show every operation, or --list --search <text> to filter.`,
		Example: `  octoglue call repos/get-content -p owner=cli -p repo=cli -p path=docs/README.md
  octoglue call markdown/render --body '{"text":"**hi**"}'
  octoglue call --list --search release`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}

			if list {
				return printOperations(cmd, cat, search)
			}
			if len(args) == 0 {
				return fmt.Errorf("operation id is required (see --list)")
			}

			op, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown operation: %w", &resolve.NotFoundError{
					Query:       args[0],
					Suggestions: resolve.Suggest(args[0], cat.IDs(), 5),
				})
			}

			values := make(map[string]string, len(params))
			for _, p := range params {
				k, v, err := validation.ParseKeyValue(p)
				if err != nil {
					return err
				}
				values[k] = v
			}

			var content *api.Content
			if body != "" {
				data, err := readBodyArg(cmd, body)
				if err != nil {
					return err
				}
				content = api.RawContent(data, "application/json")
			}

			ctx := cmdContext(cmd)
			caller, err := getCaller(ctx)
			if err != nil {
				return err
			}
			req, err := op.Request(caller.Configuration(), values, content)
			if err != nil {
				return err
			}

			var data []byte
			send := func() error {
				resp, err := checkResponse(caller.Send(ctx, req))
				if err != nil {
					return err
				}
				defer func() { _ = resp.Body.Close() }()
				data, err = io.ReadAll(resp.Body)
				return err
			}
			// Only reads are retried: a repeated write may apply twice.
			if op.IsRead() {
				err = newPager(caller).Retry(ctx, func(_ context.Context) error { return send() })
			} else {
				err = send()
			}
			if err != nil {
				return err
			}
			return printRaw(cmd, data)
		}),
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "JSON body: inline, @file, or - for stdin")
	cmd.Flags().BoolVar(&list, "list", false, "List catalogued operations")
	cmd.Flags().StringVar(&search, "search", "", "Filter --list by id or summary")
	return cmd
}

func printOperations(cmd *cobra.Command, cat *catalog.Catalog, search string) error {
	ops := cat.Operations()
	if search != "" {
		needle := strings.ToLower(search)
		filtered := ops[:0]
		for _, op := range ops {
			if strings.Contains(strings.ToLower(op.ID), needle) || strings.Contains(strings.ToLower(op.Summary), needle) {
				filtered = append(filtered, op)
			}
		}
		ops = filtered
	}

	if isJSON(cmd) {
		if ops == nil {
			ops = []catalog.Operation{}
		}
		return printJSON(cmd, ops)
	}

	w := newTabWriterFromCmd(cmd)
	_, _ = fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH")
	for _, op := range ops {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", op.ID, op.Method, op.Path)
	}
	return w.Flush()
}

// printRaw prints a response body. JSON bodies go through the output
// formatter so --jq applies; anything else is written as is.
func printRaw(cmd *cobra.Command, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if json.Valid(data) {
		if isJSON(cmd) {
			return printJSON(cmd, json.RawMessage(data))
		}
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			pretty, err := json.MarshalIndent(v, "", "  ")
			if err == nil {
				data = append(pretty, '\n')
			}
		}
	}
	_, err := cmdOut(cmd).Write(data)
	return err
}
