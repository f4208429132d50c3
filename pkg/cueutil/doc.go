// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluation steps shared by envcmd.
//
// Two entry points exist:
//
//   - ParseAndDecode unifies user data with an embedded schema definition and
//     decodes the result into a Go struct. The tool configuration uses it.
//   - ExportJSON evaluates a schema-less CUE file and exports it as JSON. CUE
//     env modules and CUE runtime-config files use it so that values reach the
//     env loaders in one well-defined encoding.
//
// Errors carry the file name and the CUE path of the offending value:
//
//	config.cue: use_shell: conflicting values true and "yes"
package cueutil
