// SPDX-License-Identifier: MPL-2.0

package source

import (
	"strings"
)

// DefaultRCFile is the conventional runtime-config file name.
const DefaultRCFile = ".env-cmdrc"

// rcFormat picks the decoder for the runtime-config file. A name without a
// structured extension, like the default ".env-cmdrc", is JSON.
func rcFormat(path string) Format {
	if f, ok := FormatForPath(path); ok {
		return f
	}
	return FormatJSON
}

// SplitSections splits a comma-separated list of section names.
// Blank entries are dropped.
func SplitSections(envSource string) []string {
	var names []string
	for name := range strings.SplitSeq(envSource, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
