// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/envcmd/envcmd/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualLauncher runs the command line through an embedded POSIX shell, so
// shell syntax in the command is evaluated against the child environment.
type VirtualLauncher struct{}

// NewVirtualLauncher creates a VirtualLauncher.
func NewVirtualLauncher() *VirtualLauncher {
	return &VirtualLauncher{}
}

// Name returns the launcher name.
func (l *VirtualLauncher) Name() string {
	return "virtual"
}

// CommandLine joins command and args with single spaces, the way a shell
// receives them.
func CommandLine(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), " ")
}

// Launch parses the command line and runs it in the interpreter.
func (l *VirtualLauncher) Launch(ctx context.Context, req *Request) *Result {
	line := CommandLine(req.Command, req.Args)

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "command")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse command line: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(EnvToSlice(req.Env)...)),
		interp.StdIO(req.Stdin, req.Stdout, req.Stderr),
		interp.ExecHandlers(traceExec),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		if ctx.Err() != nil {
			return NewExitCodeResult(ExitInterrupted)
		}
		return NewErrorResult(1, fmt.Errorf("command execution failed: %w", err))
	}

	return NewSuccessResult()
}

func traceExec(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		slog.Debug("shell exec", "args", args)
		return next(ctx, args)
	}
}
