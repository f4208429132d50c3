// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
)

type (
	// Request is everything a Launcher needs to start the child.
	Request struct {
		Command string
		Args    []string
		// Env is the complete child environment.
		Env map[string]string
		// Dir is the child's working directory. Empty means inherit.
		Dir    string
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Launcher starts a child process and waits for it to finish.
	Launcher interface {
		Name() string
		Launch(ctx context.Context, req *Request) *Result
	}

	// Dispatcher merges resolved variables over the process environment and
	// hands the command to its Launcher.
	Dispatcher struct {
		// Launcher starts the child. Nil means a NativeLauncher.
		Launcher Launcher
		// Environ returns the process environment as "KEY=VALUE" entries.
		// Nil means os.Environ.
		Environ func() []string
		// NoOverride keeps existing process variables when the resolved map
		// defines the same name.
		NoOverride bool
		Dir        string
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// RecordingLauncher records requests instead of starting processes.
	// It is used by tests across packages.
	RecordingLauncher struct {
		// Result is returned from every Launch call. Nil means success.
		Result *Result

		mu       sync.Mutex
		requests []*Request
	}
)

// Dispatch merges resolved over a fresh environment snapshot and launches
// command with args.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, args []string, resolved map[string]string) *Result {
	launcher := d.Launcher
	if launcher == nil {
		launcher = NewNativeLauncher()
	}
	environ := d.Environ
	if environ == nil {
		environ = os.Environ
	}

	req := &Request{
		Command: command,
		Args:    slices.Clone(args),
		Env:     MergeEnv(EnvFromSlice(environ()), resolved, !d.NoOverride),
		Dir:     d.Dir,
		Stdin:   d.Stdin,
		Stdout:  d.Stdout,
		Stderr:  d.Stderr,
	}

	slog.Debug("launching command",
		"launcher", launcher.Name(),
		"command", command,
		"args", len(args),
		"resolved", len(resolved),
		"override", !d.NoOverride)

	return launcher.Launch(ctx, req)
}

// Name implements Launcher.
func (l *RecordingLauncher) Name() string { return "recording" }

// Launch implements Launcher.
func (l *RecordingLauncher) Launch(_ context.Context, req *Request) *Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, req)
	if l.Result == nil {
		return NewSuccessResult()
	}
	return l.Result
}

// Requests returns the recorded requests in launch order.
func (l *RecordingLauncher) Requests() []*Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.requests)
}
