// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/envcmd/envcmd/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the envcmd command bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		configPath  string
		printConfig bool
	)

	root := &cobra.Command{
		Use:   "envcmd [flags] <env_file | rc_section[,rc_section...]> <command> [args...]",
		Short: "Run a command with environment variables loaded from a file",
		Long: TitleStyle.Render("envcmd") + SubtitleStyle.Render(" - run a command with an env file") + `

envcmd reads variables from an env file, or from a section of the
runtime-config file (.env-cmdrc), merges them over the current
environment and runs the command with the result.

` + SubtitleStyle.Render("Env files:") + `
  KEY=VALUE or KEY VALUE lines; # starts a comment outside quotes.
  Files ending in .json, .cue, .toml, .yaml or .yml are read as a flat map.

` + SubtitleStyle.Render("Flags:") + `
  Flags must come before the env source. Everything after it is passed
  to the command untouched.`,
		Example: "  " + CmdStyle.Render("envcmd .env node index.js") + "\n" +
			"  " + CmdStyle.Render("envcmd ./config/env.json npm test -- --watch") + "\n" +
			"  " + CmdStyle.Render("envcmd production,local npm start") + "\n" +
			"  " + CmdStyle.Render("envcmd --use-shell .env 'echo $BOB && make'"),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := overridesFromFlags(cmd.Flags())
			if printConfig {
				return app.PrintConfig(cmd.Context(), configPath, ov)
			}
			return app.Run(cmd.Context(), RunRequest{
				Args:       args,
				ConfigPath: configPath,
				Overrides:  ov,
			})
		},
	}

	flags := root.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/envcmd/config.cue)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("silent", false, "ignore environment load errors and run the command anyway")
	flags.Bool("no-override", false, "keep existing environment variables that the env file also defines")
	flags.Bool("use-shell", false, "run the command through the built-in POSIX shell")
	flags.String("rc-file", "", "runtime-config file (default is .env-cmdrc)")
	flags.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	app.usage = root.UsageString

	return root
}

func overridesFromFlags(flags *pflag.FlagSet) Overrides {
	var ov Overrides
	if flags.Changed("rc-file") {
		v, _ := flags.GetString("rc-file")
		ov.RCFile = &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	ov.UseShell = boolFlag("use-shell")
	ov.NoOverride = boolFlag("no-override")
	ov.Silent = boolFlag("silent")
	ov.Verbose = boolFlag("verbose")
	return ov
}

// HandleError prints err for the user. Usage errors are preceded by the
// usage text; actionable errors list their suggestions and, in verbose mode,
// the matching help page.
func (a *App) HandleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) && a.usage != nil {
		fmt.Fprintln(w, a.usage())
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fang.DefaultErrorHandler(w, styles, errors.New(ae.Format(a.verbose)))

	entry := ae.Issue()
	if entry == nil {
		return
	}
	if !a.verbose {
		fmt.Fprintln(w, hintStyle.Render("Run with --verbose for help on this error."))
		return
	}
	rendered, renderErr := entry.Render(string(a.colorScheme))
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", entry.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}

// Execute runs envcmd with os.Args and returns the process exit code.
// This is called by main.main().
func Execute() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	slog.SetDefault(slog.New(app.Logger()))

	err = fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(app.HandleError),
	)
	return ExitCode(err)
}
