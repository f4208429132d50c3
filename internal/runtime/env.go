// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"slices"
	"strings"
)

// MergeEnv returns a new map holding base overlaid with overlay. When
// override is false, keys already present in base keep their base value.
// Neither input is modified.
func MergeEnv(base, overlay map[string]string, override bool) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	maps.Copy(merged, base)
	for k, v := range overlay {
		if _, exists := base[k]; exists && !override {
			continue
		}
		merged[k] = v
	}
	return merged
}

// EnvFromSlice converts "KEY=VALUE" entries into a map. Entries without a
// separator are skipped. A leading '=' is part of the name, which keeps the
// Windows per-drive entries ("=C:=C:\dir") intact.
func EnvFromSlice(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		idx := findEnvSeparator(entry)
		if idx == -1 {
			continue
		}
		env[entry[:idx]] = entry[idx+1:]
	}
	return env
}

// EnvToSlice converts env into "KEY=VALUE" entries sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

func findEnvSeparator(entry string) int {
	if entry == "" {
		return -1
	}
	idx := strings.IndexByte(entry[1:], '=')
	if idx == -1 {
		return -1
	}
	return idx + 1
}
