// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the envcmd command line.
//
// envcmd loads environment variables from an env file or a runtime-config
// section, merges them over the current process environment and runs a
// command with the result.
package cmd
