package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/api/querylizer"
	"github.com/octoglue/octoglue/internal/pager"
	"github.com/octoglue/octoglue/internal/validation"
)

func newAPICmd() *cobra.Command {
	var (
		method    string
		fields    []string
		rawFields []string
		input     string
		include   bool
		paginate  bool
	)

	cmd := &cobra.Command{
		Use:   "api <endpoint>",
		Short: "Send a request to any REST endpoint",
		Long: `Send an authenticated request to a REST endpoint relative to the API root.

String fields (-f) become query parameters for GET and a JSON object body
otherwise. Typed fields (-F) are parsed as JSON, so -F private=true sends a
boolean. --input sends a file (or - for stdin) as the body.

With --paginate the Link header's next URL is followed and array pages
are merged into one array.`,
		Example: `  octoglue api /user
  octoglue api repos/cli/cli/releases --paginate -o json --jq '.[].tag_name'
  octoglue api -X POST repos/octocat/hello-world/issues -f title=Bug -F labels='["bug"]'`,
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			method = strings.ToUpper(method)
			if method == "" {
				method = http.MethodGet
			}
			if input != "" && (len(fields) > 0 || len(rawFields) > 0) {
				return fmt.Errorf("--input cannot be combined with -f/-F")
			}
			if paginate && method != http.MethodGet {
				return fmt.Errorf("--paginate is only valid for GET requests")
			}

			ctx := cmdContext(cmd)
			caller, err := getCaller(ctx)
			if err != nil {
				return err
			}
			cfg := caller.Configuration()

			values, err := parseFields(fields, rawFields)
			if err != nil {
				return err
			}

			target, err := endpointURL(cfg.BaseURL, args[0])
			if err != nil {
				return err
			}

			var content *api.Content
			switch {
			case input != "":
				data, err := readInput(cmd, input)
				if err != nil {
					return err
				}
				content = api.RawContent(data, "application/json")
			case method == http.MethodGet || method == http.MethodHead:
				target, err = appendQuery(target, values)
				if err != nil {
					return err
				}
			case len(values) > 0:
				content, err = api.JSONContent(values)
				if err != nil {
					return err
				}
			}

			p := newPager(caller)
			fetch := func(ctx context.Context, target string) (http.Header, int, []byte, error) {
				req, err := api.NewRequest("api", method, target, cfg.UserAgent, cfg.Accept, content)
				if err != nil {
					return nil, 0, nil, err
				}
				var (
					header http.Header
					status int
					data   []byte
				)
				op := func(ctx context.Context) error {
					resp, err := checkResponse(caller.Send(ctx, req))
					if err != nil {
						return err
					}
					defer func() { _ = resp.Body.Close() }()
					header, status = resp.Header, resp.StatusCode
					data, err = io.ReadAll(resp.Body)
					return err
				}
				if req.Method == http.MethodGet || req.Method == http.MethodHead {
					err = p.Retry(ctx, op)
				} else {
					err = op(ctx)
				}
				return header, status, data, err
			}

			header, status, data, err := fetch(ctx, target)
			if err != nil {
				return err
			}
			if include {
				writeHeaders(cmd, status, header)
			}
			if !paginate {
				return printRaw(cmd, data)
			}

			var merged []json.RawMessage
			for {
				var page []json.RawMessage
				if err := json.Unmarshal(data, &page); err != nil {
					// Not an array: nothing to merge, print the single page.
					return printRaw(cmd, data)
				}
				merged = append(merged, page...)
				next := pager.NextLink(header)
				if next == "" {
					break
				}
				if err := sameOrigin(cfg.BaseURL, next); err != nil {
					return err
				}
				header, _, data, err = fetch(ctx, next)
				if err != nil {
					return err
				}
			}
			if merged == nil {
				merged = []json.RawMessage{}
			}
			out, err := json.Marshal(merged)
			if err != nil {
				return err
			}
			return printRaw(cmd, out)
		}),
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "String field as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Typed field as key=json (repeatable)")
	cmd.Flags().StringVar(&input, "input", "", "Request body file, or - for stdin")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "Print the response status and headers")
	cmd.Flags().BoolVar(&paginate, "paginate", false, "Follow Link headers and merge array pages")
	return cmd
}

// endpointURL joins a relative endpoint to the API root. Absolute URLs
// must share the API root's origin so credentials stay on that host.
func endpointURL(baseURL, endpoint string) (string, error) {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", fmt.Errorf("endpoint is required")
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		if err := sameOrigin(baseURL, endpoint); err != nil {
			return "", err
		}
		return endpoint, nil
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/"), nil
}

func sameOrigin(baseURL, target string) error {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	b, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	t, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", target, err)
	}
	if !strings.EqualFold(t.Scheme, b.Scheme) || !strings.EqualFold(t.Host, b.Host) {
		return fmt.Errorf("refusing to send credentials to %s: not under %s", target, baseURL)
	}
	return nil
}

// parseFields merges -f and -F values. Typed values that are not valid
// JSON are kept as strings.
func parseFields(fields, rawFields []string) (map[string]any, error) {
	values := make(map[string]any, len(fields)+len(rawFields))
	for _, f := range fields {
		k, v, err := validation.ParseKeyValue(f)
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	for _, f := range rawFields {
		k, v, err := validation.ParseKeyValue(f)
		if err != nil {
			return nil, err
		}
		var typed any
		if err := json.Unmarshal([]byte(v), &typed); err != nil {
			typed = v
		}
		values[k] = typed
	}
	return values, nil
}

// appendQuery adds values to target in key order, form-encoded.
func appendQuery(target string, values map[string]any) (string, error) {
	if len(values) == 0 {
		return target, nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(target)
	sep := byte('?')
	if strings.Contains(target, "?") {
		sep = '&'
	}
	for _, k := range keys {
		b.WriteByte(sep)
		sep = '&'
		if err := querylizer.Form(&b, k, values[k], true, querylizer.EncodeQuery); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func readInput(cmd *cobra.Command, input string) ([]byte, error) {
	if input == "-" {
		return readBodyArg(cmd, "-")
	}
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("failed to read --input: %w", err)
	}
	return readBodyArg(cmd, "@"+input)
}

func writeHeaders(cmd *cobra.Command, status int, header http.Header) {
	out := cmdOut(cmd)
	_, _ = fmt.Fprintf(out, "HTTP %d %s\n", status, http.StatusText(status))
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "%s: %s\n", name, strings.Join(header[name], ", "))
	}
	_, _ = fmt.Fprintln(out)
}
