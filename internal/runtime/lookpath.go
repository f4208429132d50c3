// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"strings"

	"github.com/envcmd/envcmd/pkg/platform"
)

// defaultPathExt is used on Windows when the child environment has no PATHEXT.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// LookPath resolves command against the PATH of the child environment env.
// Relative PATH entries are taken relative to dir, or to the process working
// directory when dir is empty. A command that already contains a path
// separator is returned unchanged. When env has no PATH entry the process
// PATH is searched instead.
//
// A command that cannot be found yields an error matching exec.ErrNotFound.
func LookPath(command string, env map[string]string, dir string) (string, error) {
	return lookPath(command, env, dir, platform.IsWindows(goruntime.GOOS))
}

func lookPath(command string, env map[string]string, dir string, windows bool) (string, error) {
	if hasPathSeparator(command, windows) {
		return command, nil
	}

	pathList, ok := envLookup(env, "PATH", windows)
	if !ok {
		return exec.LookPath(command)
	}

	exts := executableExtensions(env, windows)
	for _, entry := range filepath.SplitList(pathList) {
		if entry == "" {
			entry = "."
		}
		candidate := filepath.Join(entry, command)
		if !filepath.IsAbs(candidate) && dir != "" {
			candidate = filepath.Join(dir, candidate)
		}
		found, ok := findExecutable(candidate, exts)
		if !ok {
			continue
		}
		// exec.Command would search the process PATH again for a bare name.
		abs, err := filepath.Abs(found)
		if err != nil {
			return "", &exec.Error{Name: command, Err: err}
		}
		return abs, nil
	}

	return "", &exec.Error{Name: command, Err: exec.ErrNotFound}
}

func hasPathSeparator(command string, windows bool) bool {
	if windows {
		return strings.ContainsAny(command, `/\:`)
	}
	return strings.ContainsRune(command, '/')
}

// envLookup reads key from env. Windows variable names are case-insensitive.
func envLookup(env map[string]string, key string, windows bool) (string, bool) {
	if v, ok := env[key]; ok {
		return v, true
	}
	if !windows {
		return "", false
	}
	for k, v := range env {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// executableExtensions returns the lowercase PATHEXT list on Windows and nil
// elsewhere.
func executableExtensions(env map[string]string, windows bool) []string {
	if !windows {
		return nil
	}
	pathext, ok := envLookup(env, "PATHEXT", true)
	if !ok || pathext == "" {
		pathext = defaultPathExt
	}

	var exts []string
	for ext := range strings.SplitSeq(strings.ToLower(pathext), ";") {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// findExecutable checks path, trying each of exts when exts is non-empty.
func findExecutable(path string, exts []string) (string, bool) {
	if len(exts) == 0 {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", false
		}
		return path, info.Mode()&0o111 != 0
	}

	if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) && isRegularFile(path) {
		return path, true
	}
	for _, ext := range exts {
		if candidate := path + ext; isRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
