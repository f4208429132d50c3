// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The envcmd binary is built once and each script runs it in an isolated
// work directory.
package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// binaryPath is the path to the built envcmd binary.
var binaryPath string

func TestMain(m *testing.M) {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	// Walk up to find go.mod
	projectRoot := wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binDir, err := os.MkdirTemp("", "envcmd-cli-test")
	if err != nil {
		panic("failed to create bin directory: " + err.Error())
	}

	binaryName := "envcmd"
	if runtime.GOOS == "windows" {
		binaryName = "envcmd.exe"
	}
	binaryPath = filepath.Join(binDir, binaryName)

	cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build envcmd: " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(binDir)
	os.Exit(code)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			binDir := filepath.Dir(binaryPath)
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))

			// Keep the user's config and ENVCMD_* settings out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		ContinueOnError: true,
	})
}
