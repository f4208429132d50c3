// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/envcmd/envcmd/internal/config"
	"github.com/envcmd/envcmd/internal/issue"
	"github.com/envcmd/envcmd/internal/runtime"
	"github.com/envcmd/envcmd/internal/source"

	"github.com/charmbracelet/log"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// EnvResolver turns an envSource into an environment map.
	EnvResolver interface {
		Resolve(envSource string) (map[string]string, error)
	}

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: the root command delegates to Run.
	App struct {
		Config ConfigProvider
		// NewResolver builds the resolver for one invocation.
		NewResolver func(workDir, rcFile string) EnvResolver
		// Launcher overrides the launcher selected by the use_shell setting.
		Launcher runtime.Launcher
		Environ  func() []string
		WorkDir  string

		logger *log.Logger
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Set by Run and read by the error handler.
		verbose     bool
		colorScheme config.ColorScheme
		usage       func() string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		NewResolver func(workDir, rcFile string) EnvResolver
		Launcher    runtime.Launcher
		Environ     func() []string
		WorkDir     string
		Stdin       io.Reader
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// Overrides holds the flags set explicitly on the command line. Nil
	// fields leave the configured value untouched.
	Overrides struct {
		RCFile     *string
		UseShell   *bool
		NoOverride *bool
		Silent     *bool
		Verbose    *bool
	}

	// RunRequest captures one invocation.
	RunRequest struct {
		// Args are the positional arguments: envSource, command, command args.
		Args []string
		// ConfigPath is the explicit --config value.
		ConfigPath string
		Overrides  Overrides
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewResolver == nil {
		deps.NewResolver = func(workDir, rcFile string) EnvResolver {
			return source.NewResolver(workDir, rcFile)
		}
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}
	if deps.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deps.WorkDir = wd
	}

	return &App{
		Config:      deps.Config,
		NewResolver: deps.NewResolver,
		Launcher:    deps.Launcher,
		Environ:     deps.Environ,
		WorkDir:     deps.WorkDir,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.WarnLevel,
		}),
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		colorScheme: config.ColorSchemeAuto,
	}, nil
}

// Logger returns the logger installed as the slog handler by Execute.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// Run loads the environment named by the first argument and runs the
// command with it. A non-zero child exit is returned as an *ExitError with a
// nil Err.
func (a *App) Run(ctx context.Context, req RunRequest) error {
	a.setVerbose(req.Overrides.Verbose != nil && *req.Overrides.Verbose)

	parsed, err := ParseArguments(req.Args)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse arguments").
			WithIssue(issue.UsageId).
			Wrap(err).
			BuildError()
	}

	settings, err := a.LoadSettings(ctx, req.ConfigPath, req.Overrides)
	if err != nil {
		return err
	}

	env, err := a.resolveEnv(parsed.EnvSource, settings)
	if err != nil {
		return err
	}

	return a.dispatch(ctx, parsed, env, settings)
}

// LoadSettings loads the configuration and applies the command-line
// overrides. A broken default config file is reported and ignored; a broken
// file named with --config is fatal.
func (a *App) LoadSettings(ctx context.Context, configPath string, ov Overrides) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		if configPath != "" {
			return nil, err
		}
		slog.Warn("ignoring configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	settings := *cfg
	if ov.RCFile != nil {
		settings.RCFile = *ov.RCFile
	}
	if ov.UseShell != nil {
		settings.UseShell = *ov.UseShell
	}
	if ov.NoOverride != nil {
		settings.NoOverride = *ov.NoOverride
	}
	if ov.Silent != nil {
		settings.Silent = *ov.Silent
	}
	if ov.Verbose != nil {
		settings.Verbose = *ov.Verbose
	}

	a.setVerbose(settings.Verbose)
	a.colorScheme = settings.ColorScheme
	if path := cfg.Path(); path != "" {
		slog.Debug("configuration loaded", "path", path)
	}

	return &settings, nil
}

func (a *App) setVerbose(verbose bool) {
	a.verbose = verbose
	if verbose {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.WarnLevel)
	}
}

func (a *App) resolveEnv(envSource string, settings *config.Config) (map[string]string, error) {
	env, err := a.NewResolver(a.WorkDir, settings.RCFile).Resolve(envSource)
	if err == nil {
		slog.Debug("environment loaded", "source", envSource, "variables", len(env))
		return env, nil
	}

	if settings.Silent {
		slog.Warn("ignoring environment", "source", envSource, "error", err)
		return nil, nil
	}

	return nil, sourceError(envSource, err)
}

func sourceError(envSource string, err error) error {
	ctx := issue.NewErrorContext().Wrap(err)

	var notFound *source.SourceNotFoundError
	var loadErr *source.StructuredLoadError
	switch {
	case errors.As(err, &notFound):
		ctx.WithOperation("load environment").
			WithResource(notFound.FallbackPath).
			WithIssue(issue.SourceNotFoundId).
			WithSuggestion(fmt.Sprintf("Check that %s exists and is readable", notFound.FilePath))
		if notFound.FallbackPath != "" {
			ctx.WithSuggestion(fmt.Sprintf("Or define a %q section in %s", envSource, notFound.FallbackPath))
		}
	case errors.As(err, &loadErr):
		ctx.WithOperation("read environment").
			WithResource(loadErr.Path).
			WithIssue(issue.StructuredLoadFailedId)
	default:
		ctx.WithOperation("load environment").WithResource(envSource)
	}

	return ctx.BuildError()
}

func (a *App) dispatch(ctx context.Context, parsed ParsedArguments, env map[string]string, settings *config.Config) error {
	launcher := a.Launcher
	if launcher == nil {
		if settings.UseShell {
			launcher = runtime.NewVirtualLauncher()
		} else {
			launcher = runtime.NewNativeLauncher()
		}
	}

	d := &runtime.Dispatcher{
		Launcher:   launcher,
		Environ:    a.Environ,
		NoOverride: settings.NoOverride,
		Stdin:      a.stdin,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
	}

	result := d.Dispatch(ctx, parsed.Command, parsed.CommandArgs, env)
	if result.Error != nil {
		id := issue.ScriptExecutionFailedId
		if errors.Is(result.Error, runtime.ErrCommandNotFound) {
			id = issue.CommandNotFoundId
		}
		return &ExitError{
			Code: result.ExitCode,
			Err: issue.NewErrorContext().
				WithOperation("run command").
				WithResource(parsed.Command).
				WithIssue(id).
				Wrap(result.Error).
				BuildError(),
		}
	}

	if !result.ExitCode.IsSuccess() {
		slog.Debug("command exited", "command", parsed.Command, "code", result.ExitCode)
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}

// PrintConfig writes the effective settings as a CUE config file.
func (a *App) PrintConfig(ctx context.Context, configPath string, ov Overrides) error {
	settings, err := a.LoadSettings(ctx, configPath, ov)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, config.GenerateCUE(settings))
	return err
}
