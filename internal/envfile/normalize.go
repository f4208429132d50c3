// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"strings"
)

// Normalize strips comments and then removes blank lines.
// The result holds only non-empty lines, each terminated by a single newline.
func Normalize(text string) string {
	return RemoveBlankLines(StripComments(text))
}

// StripComments removes full-line and trailing comments from text.
//
// A line whose first non-space character is '#' is replaced by an empty line,
// so the line count is preserved. A trailing "#..." suffix is removed together
// with the whitespace before it, unless the '#' sits inside a double-quoted
// span that is closed later on the same line.
func StripComments(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return strings.Join(lines, "\n")
}

// RemoveBlankLines drops empty and whitespace-only lines. Every kept line,
// including the last one, is terminated by exactly one newline.
func RemoveBlankLines(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 1)
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitLines splits on '\n' and drops a trailing '\r' from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func stripLineComment(line string) string {
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		return ""
	}

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			// Only a quote with a closing partner opens a span.
			if end := strings.IndexByte(line[i+1:], '"'); end != -1 {
				i += end + 1
			}
		case '#':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
