// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"strings"
)

const (
	// Unmatched marks a line that fits neither accepted syntax.
	Unmatched LineKind = iota
	// Matched marks a line that yielded a key and a value.
	Matched
)

type (
	// LineKind tags the outcome of classifying a single line.
	LineKind int

	// LineResult is the classification of one normalized line.
	// Key and Value are only meaningful when Kind is Matched.
	LineResult struct {
		Kind  LineKind
		Key   string
		Value string
	}
)

// String returns the name of the line kind.
func (k LineKind) String() string {
	if k == Matched {
		return "matched"
	}
	return "unmatched"
}

// ClassifyLine tries the KEY=VALUE form first and the KEY VALUE form second.
// Either form only matches when the text before its separator is a valid
// variable name, so "FOO = bar" falls through to the KEY VALUE form.
func ClassifyLine(line string) LineResult {
	line = strings.TrimSpace(line)

	if key, value, found := strings.Cut(line, "="); found {
		if IsValidName(key) {
			return LineResult{Kind: Matched, Key: key, Value: strings.TrimSpace(value)}
		}
	}

	if idx := strings.IndexAny(line, " \t"); idx != -1 {
		key := line[:idx]
		if IsValidName(key) {
			return LineResult{Kind: Matched, Key: key, Value: strings.TrimSpace(line[idx:])}
		}
	}

	return LineResult{Kind: Unmatched}
}

// ParseLines converts normalized text into an environment map.
// Unmatched lines are skipped; for repeated keys the later line wins.
func ParseLines(text string) map[string]string {
	env := make(map[string]string)
	ParseLinesInto(env, text)
	return env
}

// ParseLinesInto merges the matched lines of text into env.
func ParseLinesInto(env map[string]string, text string) {
	for _, line := range splitLines(text) {
		res := ClassifyLine(line)
		if res.Kind == Unmatched {
			continue
		}
		env[res.Key] = res.Value
	}
}

// IsValidName reports whether name is usable as a variable name: ASCII
// letters, digits and underscores only, and not made of digits alone.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	allDigits := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
			allDigits = false
		default:
			return false
		}
	}
	return !allDigits
}
