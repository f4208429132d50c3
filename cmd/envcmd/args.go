// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"
)

// minPositionalArgs is the envSource plus the command.
const minPositionalArgs = 2

// ErrTooFewArguments is the sentinel wrapped by UsageError.
var ErrTooFewArguments = errors.New("too few arguments")

type (
	// ParsedArguments is the positional part of an envcmd invocation.
	ParsedArguments struct {
		// EnvSource is an env file path or runtime-config section list.
		EnvSource string
		// Command is the executable to run.
		Command string
		// CommandArgs are passed to Command unchanged.
		CommandArgs []string
	}

	// UsageError reports an invocation that cannot be run. The CLI prints the
	// usage text before the message.
	UsageError struct {
		Got int
	}
)

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: expected an env source and a command, got %d argument(s)", ErrTooFewArguments, e.Got)
}

// Unwrap returns ErrTooFewArguments.
func (e *UsageError) Unwrap() error { return ErrTooFewArguments }

// ParseArguments splits args into the env source, the command and its
// arguments.
func ParseArguments(args []string) (ParsedArguments, error) {
	if len(args) < minPositionalArgs {
		return ParsedArguments{}, &UsageError{Got: len(args)}
	}
	return ParsedArguments{
		EnvSource:   args[0],
		Command:     args[1],
		CommandArgs: slices.Clone(args[2:]),
	}, nil
}
