// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/envcmd/envcmd/pkg/types"
)

const (
	// DefaultGracePeriod is how long a child may keep running after it was
	// interrupted before it is killed.
	DefaultGracePeriod = 10 * time.Second

	// ExitCommandNotFound is the shell convention for a missing executable.
	ExitCommandNotFound types.ExitCode = 127
	// ExitInterrupted is the shell convention for termination by SIGINT.
	ExitInterrupted types.ExitCode = 130
)

// ErrCommandNotFound is returned when the executable cannot be located.
var ErrCommandNotFound = errors.New("command not found")

// NativeLauncher runs the command directly, without a shell.
type NativeLauncher struct {
	// GracePeriod overrides DefaultGracePeriod.
	GracePeriod time.Duration
}

// NewNativeLauncher creates a NativeLauncher.
func NewNativeLauncher() *NativeLauncher {
	return &NativeLauncher{}
}

// Name returns the launcher name.
func (l *NativeLauncher) Name() string {
	return "native"
}

// Launch runs req.Command with req.Args and the request environment. The
// executable is looked up on the PATH of the request environment.
// Cancelling ctx sends an interrupt to the child; the child is killed if it
// is still running after the grace period.
func (l *NativeLauncher) Launch(ctx context.Context, req *Request) *Result {
	path, err := LookPath(req.Command, req.Env, req.Dir)
	if err != nil {
		return l.result(ctx, req.Command, err)
	}

	cmd := exec.CommandContext(ctx, path, req.Args...)
	cmd.Args[0] = req.Command
	cmd.Env = EnvToSlice(req.Env)
	cmd.Dir = req.Dir
	cmd.Stdin = req.Stdin
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = l.gracePeriod()

	return l.result(ctx, req.Command, cmd.Run())
}

func (l *NativeLauncher) gracePeriod() time.Duration {
	if l.GracePeriod > 0 {
		return l.GracePeriod
	}
	return DefaultGracePeriod
}

func (l *NativeLauncher) result(ctx context.Context, command string, err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	if errors.Is(err, exec.ErrNotFound) {
		return NewErrorResult(ExitCommandNotFound, fmt.Errorf("%w: %s", ErrCommandNotFound, command))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode())
		if code.Validate() == nil {
			return NewExitCodeResult(code)
		}
		// Terminated by a signal.
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return NewExitCodeResult(types.FromSignal(int(ws.Signal())))
		}
		if ctx.Err() != nil {
			return NewExitCodeResult(ExitInterrupted)
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("%s: %w", command, exitErr))
	}

	return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to execute %s: %w", command, err))
}
