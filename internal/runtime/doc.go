// SPDX-License-Identifier: MPL-2.0

// Package runtime merges resolved variables into the process environment and
// launches the child command.
//
// The Dispatcher takes a snapshot of the process environment, overlays the
// resolved variables and hands a Request to a Launcher. The process's own
// environment is never modified; the merged map travels with the Request.
//
// Two launchers are available:
//   - native: runs the command directly with os/exec
//   - virtual: runs the command line through an embedded POSIX shell (mvdan/sh)
//
// Both inherit the caller's stdin, stdout and stderr and pass the child's exit
// code through unchanged.
package runtime
