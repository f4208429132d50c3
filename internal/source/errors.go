// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotFound is the sentinel error wrapped by SourceNotFoundError.
	ErrSourceNotFound = errors.New("env source not found")

	// ErrStructuredLoad is the sentinel error wrapped by StructuredLoadError.
	ErrStructuredLoad = errors.New("structured env file could not be loaded")
)

type (
	// SourceNotFoundError is returned when neither the direct file nor the
	// runtime-config section lookup resolved an envSource.
	SourceNotFoundError struct {
		// EnvSource is the argument as given by the user.
		EnvSource string
		// FilePath is the resolved path of the direct file attempt.
		FilePath string
		// FallbackPath is the resolved path of the runtime-config file, the
		// last path attempted.
		FallbackPath string
		// MissingSections lists the requested sections absent from an
		// existing runtime-config file. Empty when the file itself is missing.
		MissingSections []string
	}

	// StructuredLoadError is returned when a structured env file or the
	// runtime-config file exists but cannot be read or decoded.
	StructuredLoadError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *SourceNotFoundError) Error() string {
	if len(e.MissingSections) > 0 {
		quoted := make([]string, len(e.MissingSections))
		for i, s := range e.MissingSections {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("could not find environment %s in %s", strings.Join(quoted, ", "), e.FallbackPath)
	}
	return "could not find or read file at " + e.FallbackPath
}

// Unwrap returns ErrSourceNotFound for errors.Is compatibility.
func (e *SourceNotFoundError) Unwrap() error { return ErrSourceNotFound }

// Error implements the error interface.
func (e *StructuredLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the decoder error.
func (e *StructuredLoadError) Unwrap() []error { return []error{ErrStructuredLoad, e.Err} }
