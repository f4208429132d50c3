// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/envcmd/envcmd/internal/source"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Config holds the envcmd settings. Field names mirror #Config in
	// config_schema.cue.
	Config struct {
		// RCFile is the runtime-config file consulted when an env file
		// cannot be read.
		RCFile string `json:"rc_file" mapstructure:"rc_file"`
		// UseShell runs the command through the embedded shell.
		UseShell bool `json:"use_shell" mapstructure:"use_shell"`
		// NoOverride keeps existing process variables.
		NoOverride bool `json:"no_override" mapstructure:"no_override"`
		// Silent ignores environment load errors.
		Silent bool `json:"silent" mapstructure:"silent"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the glamour style for help pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`

		path string
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// IsValid validates the fields CUE cannot check once environment variables
// have been applied.
func (c *Config) IsValid() (bool, []error) {
	return c.ColorScheme.IsValid()
}

// Path returns the config file the settings were read from, or "" when only
// defaults and environment variables applied.
func (c *Config) Path() string { return c.path }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RCFile:      source.DefaultRCFile,
		ColorScheme: ColorSchemeAuto,
	}
}
