// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/envcmd/envcmd/internal/issue"
	"github.com/envcmd/envcmd/internal/testutil"

	"github.com/charmbracelet/fang"
)

func executeRoot(t *testing.T, app *testApp, args ...string) error {
	t.Helper()
	root := NewRootCommand(app.App)
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetArgs(args)
	return root.ExecuteContext(t.Context())
}

func TestRootFlagsStopAtEnvSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, ".env", "NODE_ENV=dev\n")
	app := newTestApp(t, dir, nil, "NODE_ENV=development")

	err := executeRoot(t, app, "--no-override", ".env", "node", "--verbose", "-x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	req := app.launcher.Requests()[0]
	if !slices.Equal(req.Args, []string{"--verbose", "-x"}) {
		t.Errorf("Args = %v, want flags after the env source passed through", req.Args)
	}
	if req.Env["NODE_ENV"] != "development" {
		t.Errorf("NODE_ENV = %q, --no-override not applied", req.Env["NODE_ENV"])
	}
	if app.verbose {
		t.Error("--verbose after the env source must not enable verbose mode")
	}
}

func TestRootVerboseFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, ".env", "A=1\n")
	app := newTestApp(t, dir, nil)

	if err := executeRoot(t, app, "-v", ".env", "true"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !app.verbose {
		t.Error("-v should enable verbose mode")
	}
}

func TestRootPrintConfig(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, t.TempDir(), nil)

	if err := executeRoot(t, app, "--print-config", "--rc-file", "envs.toml"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(app.stdout.String(), `rc_file:      "envs.toml"`) {
		t.Errorf("stdout = %q", app.stdout.String())
	}
	if len(app.launcher.Requests()) != 0 {
		t.Error("--print-config must not launch anything")
	}
}

func TestRootTooFewArguments(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, t.TempDir(), nil)

	err := executeRoot(t, app, ".env")
	if !errors.Is(err, ErrTooFewArguments) {
		t.Fatalf("Execute() error = %v, want ErrTooFewArguments", err)
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		err     error
		want    []string
		notWant []string
	}{
		{
			name: "silent exit",
			err:  &ExitError{Code: 3},
		},
		{
			name:    "usage error prints usage first",
			err:     &UsageError{Got: 1},
			want:    []string{"Usage:", "too few arguments"},
			notWant: []string{"--verbose for help"},
		},
		{
			name: "actionable error with hint",
			err: issue.NewErrorContext().
				WithOperation("load environment").
				WithSuggestion("Check the path").
				WithIssue(issue.SourceNotFoundId).
				Wrap(errors.New("could not find or read file at /x/.env-cmdrc")).
				BuildError(),
			want: []string{"failed to load environment", "Check the path", "Run with --verbose for help on this error."},
		},
		{
			name:    "verbose renders the help page",
			verbose: true,
			err: &ExitError{Code: 127, Err: issue.NewErrorContext().
				WithOperation("run command").
				WithIssue(issue.CommandNotFoundId).
				Wrap(errors.New("command not found: nope")).
				BuildError()},
			want:    []string{"command not found: nope", "Error chain:", "Command not found!"},
			notWant: []string{"Run with --verbose"},
		},
		{
			name: "usage error from run points at the help page",
			err: issue.NewErrorContext().
				WithOperation("parse arguments").
				WithIssue(issue.UsageId).
				Wrap(&UsageError{Got: 1}).
				BuildError(),
			want: []string{"Usage:", "too few arguments", "Run with --verbose for help on this error."},
		},
		{
			name:    "verbose usage error renders the help page",
			verbose: true,
			err: issue.NewErrorContext().
				WithOperation("parse arguments").
				WithIssue(issue.UsageId).
				Wrap(&UsageError{Got: 1}).
				BuildError(),
			want: []string{"Usage:", "too few arguments", "Missing arguments!"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(t, t.TempDir(), nil)
			NewRootCommand(app.App)
			app.verbose = tt.verbose
			app.colorScheme = "notty"

			var out bytes.Buffer
			app.HandleError(&out, fang.Styles{}, tt.err)

			if len(tt.want) == 0 && out.Len() != 0 {
				t.Errorf("HandleError() wrote %q, want nothing", out.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out.String(), notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, out.String())
				}
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"child exit", &ExitError{Code: 3}, 3},
		{"wrapped exit", errors.Join(errors.New("x"), &ExitError{Code: 127}), 127},
		{"other error", errors.New("boom"), 1},
		{"usage", &UsageError{}, 1},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
