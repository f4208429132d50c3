// SPDX-License-Identifier: MPL-2.0

// Package envfile parses plain-text env files into environment maps.
//
// Parsing is a three-stage pipeline:
//
//  1. Normalize strips comments and blank lines. A '#' inside a double-quoted
//     span on the same line is literal text, not a comment.
//  2. ParseLines classifies each remaining line as KEY=VALUE, KEY VALUE or
//     unmatched. Unmatched lines are dropped without error.
//  3. UnquoteValues removes one layer of enclosing double quotes per value.
//
// Parse composes all three stages.
package envfile
