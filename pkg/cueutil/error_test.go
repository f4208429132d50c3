// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "env.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is prefixed with the file", func(t *testing.T) {
		t.Parallel()

		original := errors.New("boom")
		err := FormatError(original, "env.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "env.cue: ") {
			t.Errorf("error should start with the file name, got: %v", err)
		}
		if !errors.Is(err, original) {
			t.Errorf("error should wrap the original error, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: nil, expected: ""},
		{name: "single element", path: []string{"rc_file"}, expected: "rc_file"},
		{name: "nested path", path: []string{"production", "NODE_ENV"}, expected: "production.NODE_ENV"},
		{name: "array index", path: []string{"hosts", "0", "name"}, expected: "hosts[0].name"},
		{name: "leading number is not an index", path: []string{"0", "x"}, expected: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 100), 100, "env.cue"); err != nil {
		t.Errorf("data at the limit should pass, got %v", err)
	}

	err := CheckFileSize(make([]byte, 101), 100, "env.cue")
	if err == nil {
		t.Fatal("expected error for oversized data")
	}
	for _, want := range []string{"env.cue", "101", "100"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}
