// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/envcmd/envcmd/internal/issue"
	"github.com/envcmd/envcmd/pkg/cueutil"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "envcmd"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes the environment variables that override settings.
	EnvPrefix = "ENVCMD"

	// maxConfigFileSize bounds the config file (1MB).
	maxConfigFileSize int64 = 1024 * 1024
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the envcmd configuration directory inside the XDG config
// home (~/.config on Linux, ~/Library/Application Support on macOS,
// %LOCALAPPDATA% on Windows).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	if xdg.ConfigHome == "" {
		return "", errors.New("failed to determine the user config directory")
	}
	return filepath.Join(xdg.ConfigHome, AppName), nil
}

// ConfigFilePath returns the default config file location.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("rc_file", defaults.RCFile)
	v.SetDefault("use_shell", defaults.UseShell)
	v.SetDefault("no_override", defaults.NoOverride)
	v.SetDefault("silent", defaults.Silent)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("color_scheme", defaults.ColorScheme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// A config file named with --config must exist.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, loadError(opts.ConfigFilePath,
				fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				"Verify the file path is correct",
				"Check that the file exists and is readable")
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, loadError(opts.ConfigFilePath, err,
				"Check that the file contains valid CUE syntax",
				"Verify the configuration values match the expected schema")
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, loadError(cuePath, err,
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema")
			}
			resolvedPath = cuePath
		}
		// No config file means defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// ENVCMD_COLOR_SCHEME bypasses the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Use one of: auto, dark, light").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	cfg.path = resolvedPath
	return &cfg, nil
}

func loadError(path string, err error, suggestions ...string) error {
	ctx := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err)
	for _, s := range suggestions {
		ctx.WithSuggestion(s)
	}
	return ctx.BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// The file decodes to map[string]any rather than a struct so Viper keeps
// defaults and environment overrides for unset fields; Concrete(false) lets
// every field stay optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
		cueutil.WithMaxFileSize(maxConfigFileSize))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a config file that validates against #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// envcmd configuration file\n\n")
	fmt.Fprintf(&sb, "rc_file:      %q\n", cfg.RCFile)
	fmt.Fprintf(&sb, "use_shell:    %v\n", cfg.UseShell)
	fmt.Fprintf(&sb, "no_override:  %v\n", cfg.NoOverride)
	fmt.Fprintf(&sb, "silent:       %v\n", cfg.Silent)
	fmt.Fprintf(&sb, "verbose:      %v\n", cfg.Verbose)
	fmt.Fprintf(&sb, "color_scheme: %q\n", cfg.ColorScheme)

	return sb.String()
}
