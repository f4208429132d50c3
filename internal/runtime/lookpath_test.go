// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/envcmd/envcmd/internal/testutil"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := testutil.MustWriteFile(t, dir, name, "#!/bin/sh\necho ok\n")
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

func TestLookPath(t *testing.T) {
	t.Parallel()
	testutil.SkipWithoutPOSIXShell(t)

	binDir := t.TempDir()
	tool := writeExecutable(t, binDir, "envcmd-test-tool")
	testutil.MustWriteFile(t, binDir, "envcmd-test-plain", "not executable\n")
	testutil.MustMkdirAll(t, filepath.Join(binDir, "envcmd-test-dir"), 0o755)

	workDir := t.TempDir()
	localTool := writeExecutable(t, workDir, filepath.Join("node_modules", ".bin", "envcmd-test-local"))

	tests := []struct {
		name     string
		command  string
		env      map[string]string
		dir      string
		want     string
		notFound bool
	}{
		{
			name:    "found on child PATH",
			command: "envcmd-test-tool",
			env:     map[string]string{"PATH": t.TempDir() + string(os.PathListSeparator) + binDir},
			want:    tool,
		},
		{
			name:     "absent from child PATH",
			command:  "envcmd-test-tool",
			env:      map[string]string{"PATH": t.TempDir()},
			notFound: true,
		},
		{
			name:     "file without execute bit is skipped",
			command:  "envcmd-test-plain",
			env:      map[string]string{"PATH": binDir},
			notFound: true,
		},
		{
			name:     "directory is skipped",
			command:  "envcmd-test-dir",
			env:      map[string]string{"PATH": binDir},
			notFound: true,
		},
		{
			name:    "relative entry resolved against dir",
			command: "envcmd-test-local",
			env:     map[string]string{"PATH": filepath.Join("node_modules", ".bin")},
			dir:     workDir,
			want:    localTool,
		},
		{
			name:    "path with separator is used as given",
			command: "./bin/tool",
			env:     map[string]string{"PATH": binDir},
			want:    "./bin/tool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LookPath(tt.command, tt.env, tt.dir)
			if tt.notFound {
				if !errors.Is(err, exec.ErrNotFound) {
					t.Fatalf("LookPath() = %q, %v; want exec.ErrNotFound", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LookPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookPathWithoutChildPATH(t *testing.T) {
	t.Parallel()
	testutil.SkipWithoutPOSIXShell(t)

	want, err := exec.LookPath("sh")
	if err != nil {
		t.Skipf("sh not on PATH: %v", err)
	}
	got, err := LookPath("sh", map[string]string{"BOB": "COOL"}, "")
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if got != want {
		t.Errorf("LookPath() = %q, want %q", got, want)
	}
}

func TestLookPathWindowsExtensions(t *testing.T) {
	t.Parallel()

	binDir := t.TempDir()
	exe := testutil.MustWriteFile(t, binDir, "tool.exe", "")
	script := testutil.MustWriteFile(t, binDir, "deploy.ps1", "")
	testutil.MustWriteFile(t, binDir, "notes", "")

	tests := []struct {
		name     string
		command  string
		env      map[string]string
		want     string
		notFound bool
	}{
		{name: "default PATHEXT", command: "tool", env: map[string]string{"Path": binDir}, want: exe},
		{name: "explicit extension", command: "tool.exe", env: map[string]string{"Path": binDir}, want: exe},
		{name: "custom PATHEXT", command: "deploy", env: map[string]string{"Path": binDir, "PathExt": ".PS1"}, want: script},
		{name: "no matching extension", command: "notes", env: map[string]string{"Path": binDir}, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lookPath(tt.command, tt.env, "", true)
			if tt.notFound {
				if !errors.Is(err, exec.ErrNotFound) {
					t.Fatalf("lookPath() = %q, %v; want exec.ErrNotFound", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("lookPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("lookPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
