// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"github.com/envcmd/envcmd/pkg/types"
)

// Result is the outcome of a launch.
type Result struct {
	// ExitCode is the child's exit code, or the code envcmd exits with when
	// the child could not be started.
	ExitCode types.ExitCode
	// Error is set for infrastructure failures only. A child exiting with a
	// non-zero code is not an error.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result for a child that ran and exited with code.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the child ran and exited with code 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
