// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/envcmd/envcmd/pkg/platform"
)

// MustWriteFile writes content to dir/name, creating parent directories, and
// returns the file path. The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// SkipWithoutPOSIXShell skips tests that spawn sh, sleep or other POSIX tools.
func SkipWithoutPOSIXShell(t testing.TB) {
	t.Helper()
	if platform.IsWindows(runtime.GOOS) {
		t.Skip("requires a POSIX sh")
	}
}
