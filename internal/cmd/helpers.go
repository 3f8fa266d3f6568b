package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/apierr"
	"github.com/octoglue/octoglue/internal/dryrun"
	"github.com/octoglue/octoglue/internal/iocontext"
	"github.com/octoglue/octoglue/internal/outfmt"
	"github.com/octoglue/octoglue/internal/pager"
	"github.com/octoglue/octoglue/internal/validation"
)

// newTabWriter creates a tabwriter for text output
func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func newTabWriterFromCmd(cmd *cobra.Command) *tabwriter.Writer {
	return newTabWriter(iocontext.GetIO(cmdContext(cmd)).Out)
}

// printJSON writes v in the JSON mode selected by --output, filtered by --jq.
func printJSON(cmd *cobra.Command, v any) error {
	ctx := cmdContext(cmd)
	if _, err := outfmt.Write(ctx, iocontext.GetIO(ctx).Out, v); err != nil {
		return err
	}
	return nil
}

func cmdOut(cmd *cobra.Command) io.Writer {
	return iocontext.GetIO(cmdContext(cmd)).Out
}

func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmdContext(cmd))
}

// infof prints a status line to stderr unless --quiet is set.
func infof(cmd *cobra.Command, format string, args ...any) {
	if flags.Quiet {
		return
	}
	_, _ = fmt.Fprintf(iocontext.GetIO(cmdContext(cmd)).ErrOut, format, args...)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printPreview(ctx context.Context, out io.Writer, preview *dryrun.Preview) error {
	if outfmt.IsJSON(ctx) {
		_, err := outfmt.Write(ctx, out, preview)
		return err
	}
	preview.Write(out)
	return nil
}

// checkResponse turns a send error or non-2xx response into an error. On
// success the response is returned with its body still open.
func checkResponse(resp *http.Response, err error) (*http.Response, error) {
	if errors.Is(err, errDryRun) {
		return nil, backoff.Permanent(errDryRun)
	}
	if err != nil {
		return nil, err
	}
	if err := apierr.FromResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// decodeResponse checks resp and decodes its JSON body into v.
func decodeResponse(resp *http.Response, err error, v any) (http.Header, error) {
	resp, err = checkResponse(resp, err)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.Header, nil
}

// newPager retries through caller.Sleep and caps rate-limit waits at
// --max-wait. The retryable backend owns server-error retries itself.
func newPager(caller *api.Caller[*http.Response]) *pager.Pager {
	p := pager.New(caller.Sleep, flags.MaxWait)
	p.TransportRetries = flags.Backend == backendRetryable
	return p
}

// readBodyArg reads a request body given inline, as @file, or as "-" for
// stdin. The result must be valid JSON.
func readBodyArg(cmd *cobra.Command, value string) ([]byte, error) {
	var data []byte
	switch {
	case value == "-":
		b, err := iocontext.ReadInput(cmdContext(cmd), validation.MaxJSONPayload)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		data = b
	case strings.HasPrefix(value, "@"):
		b, err := os.ReadFile(strings.TrimPrefix(value, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read body file: %w", err)
		}
		data = b
	default:
		data = []byte(value)
	}
	if err := validation.ValidateJSONPayload(data); err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}
	return data, nil
}

// errAlreadyHandled is a sentinel error indicating the error was already printed to stderr.
// Commands using RunE return this to signal Cobra that an error occurred (for exit code)
// without Cobra printing it again (since SilenceErrors is true on root command).
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() []error {
	return []error{errAlreadyHandled, e.err}
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// configError marks failures to load or apply configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil || errors.Is(err, errDryRun) {
			return nil
		}
		errOut := iocontext.GetIO(cmdContext(cmd)).ErrOut
		if isJSON(cmd) {
			if structured := apierr.StructuredErrorFromError(err); structured != nil {
				_ = outfmt.WriteJSON(errOut, structured)
			}
		} else {
			_, _ = fmt.Fprint(errOut, HandleError(err))
		}
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}

type aliasBridgeValue struct {
	pflag.Value
	canonical *pflag.Flag
}

func (v *aliasBridgeValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.canonical.Changed = true
	return nil
}

// flagAlias registers a hidden long-form alias that sets the canonical flag.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flagAlias: flag %q not found", name))
	}
	a := *f // shallow copy, shares the Value
	a.Name = alias
	a.Shorthand = ""
	a.Usage = ""
	a.Hidden = true
	a.Value = &aliasBridgeValue{Value: f.Value, canonical: f}
	a.Annotations = map[string][]string{"alias-of": {name}}
	fs.AddFlag(&a)
}
