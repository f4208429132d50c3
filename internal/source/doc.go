// SPDX-License-Identifier: MPL-2.0

// Package source resolves an envSource argument into an environment map.
//
// An envSource is classified into one of three kinds:
//   - StructuredModule: the argument ends in .json, .cue, .toml, .yaml or .yml
//     and is decoded by the matching structured loader.
//   - DirectText: any other argument is first read as a plain-text env file
//     relative to the working directory.
//   - Section: when the direct read fails, the argument names one or more
//     comma-separated sections of the runtime-config file (.env-cmdrc).
//
// Resolution is an explicit two-step attempt sequence. Each step returns an
// Attempt with a typed Outcome so that both steps can be exercised in
// isolation. When no step resolves, Resolve returns a *SourceNotFoundError
// that names the final fallback path.
package source
