package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestExecute_Help(t *testing.T) {
	stdout, _, err := runCmd(t, "", "--help")
	if err != nil {
		t.Fatalf("Execute() with --help failed: %v", err)
	}
	for _, want := range []string{"octoglue", "GITHUB_TOKEN", "Available Commands", "repos", "issues", "call"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestExecute_InvalidCommand(t *testing.T) {
	_, stderr, err := runCmd(t, "", "nonexistent-command")
	if err == nil {
		t.Fatal("Execute() with invalid command should return error")
	}
	if ExitCode(err) != exitUsage {
		t.Errorf("exit code = %d, want %d", ExitCode(err), exitUsage)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecute_UnknownCommand_DidYouMean(t *testing.T) {
	_, stderr, _ := runCmd(t, "", "reops")
	if !strings.Contains(stderr, "Did you mean") {
		t.Errorf("expected 'Did you mean' suggestion in stderr, got: %s", stderr)
	}
	if !strings.Contains(stderr, `"repos"`) {
		t.Errorf("expected 'repos' suggestion in stderr, got: %s", stderr)
	}
}

func TestExecute_UnknownFlag_DidYouMean(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `[]`))
	_, stderr, err := runCmd(t, "", "repos", "list", "octocat", "--per-pag", "5")
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(stderr, `Did you mean "--per-page"?`) {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "octoglue repos list --help") {
		t.Errorf("stderr should point at subcommand help: %q", stderr)
	}
}

func TestExecute_InvalidBackend(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `[]`))
	_, stderr, err := runCmd(t, "", "repos", "list", "octocat", "--backend", "carrier-pigeon")
	if err == nil {
		t.Fatal("expected error for invalid backend")
	}
	if !strings.Contains(stderr, "nethttp, retryable, async") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecute_BackendFromEnv(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `[]`))
	t.Setenv("OCTOGLUE_BACKEND", "bogus")
	if _, _, err := runCmd(t, "", "repos", "list", "octocat"); err == nil {
		t.Fatal("expected OCTOGLUE_BACKEND to be validated")
	}
}

func TestExecute_JQRequiresJSON(t *testing.T) {
	setupTestEnv(t, jsonResponse(200, `[]`))
	_, stderr, err := runCmd(t, "", "repos", "list", "octocat", "-o", "text", "--jq", ".[]")
	if err == nil {
		t.Fatal("expected error combining --jq with text output")
	}
	if !strings.Contains(stderr, "--jq requires") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecute_NegativeTimeout(t *testing.T) {
	if _, _, err := runCmd(t, "", "version", "--timeout=-1s"); err == nil {
		t.Fatal("expected error for negative --timeout")
	}
}

func TestExtractQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`unknown command "reops" for "octoglue"`, "reops"},
		{`no quotes here`, ""},
		{`unterminated "quote`, ""},
	}
	for _, tt := range tests {
		if got := extractQuoted(tt.input); got != tt.want {
			t.Errorf("extractQuoted(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractFlag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"unknown flag: --per-pag", "--per-pag"},
		{"unknown flag: --outpt.", "--outpt"},
		{"unknown shorthand flag: 'z' in -z", "-z"},
		{"nothing to see", ""},
	}
	for _, tt := range tests {
		if got := extractFlag(tt.input); got != tt.want {
			t.Errorf("extractFlag(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFlagAlias(t *testing.T) {
	t.Run("alias shares value with original", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		var val string
		fs.StringVar(&val, "output", "text", "")
		flagAlias(fs, "output", "out")

		if err := fs.Parse([]string{"--out", "json"}); err != nil {
			t.Fatal(err)
		}
		if val != "json" {
			t.Errorf("expected val=json, got %q", val)
		}
		if !fs.Lookup("output").Changed {
			t.Error("setting the alias should mark the canonical flag changed")
		}
	})

	t.Run("alias is hidden", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		var val bool
		cmd.Flags().BoolVar(&val, "dry-run", false, "")
		flagAlias(cmd.Flags(), "dry-run", "dr")

		f := cmd.Flags().Lookup("dr")
		if f == nil {
			t.Fatal("alias not found")
		}
		if !f.Hidden {
			t.Error("alias should be hidden")
		}
		if got := f.Annotations["alias-of"]; len(got) != 1 || got[0] != "dry-run" {
			t.Errorf("alias-of annotation = %v", got)
		}
	})

	t.Run("unknown flag panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		flagAlias(pflag.NewFlagSet("test", pflag.ContinueOnError), "missing", "m")
	})
}
