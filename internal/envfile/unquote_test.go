// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"testing"
)

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "plain value", value: "COOL", expected: "COOL"},
		{name: "double quoted", value: `"COOL"`, expected: "COOL"},
		{name: "nested pair keeps inner quotes", value: `""quoted""`, expected: `"quoted"`},
		{name: "single quotes inside double quotes", value: `"'singles'"`, expected: `'singles'`},
		{name: "single quoted is untouched", value: `'singles'`, expected: `'singles'`},
		{name: "empty quoted", value: `""`, expected: ""},
		{name: "lone quote", value: `"`, expected: `"`},
		{name: "only leading quote", value: `"abc`, expected: `"abc`},
		{name: "only trailing quote", value: `abc"`, expected: `abc"`},
		{name: "interior quotes", value: `a "b" c`, expected: `a "b" c`},
		{name: "empty", value: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Unquote(tt.value); got != tt.expected {
				t.Errorf("Unquote(%q) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestUnquoteValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"COOL":    `""quoted""`,
		"Awesome": `"'singles'"`,
		"PLAIN":   "value",
	}
	UnquoteValues(env)

	expected := map[string]string{
		"COOL":    `"quoted"`,
		"Awesome": `'singles'`,
		"PLAIN":   "value",
	}
	for k, v := range expected {
		if env[k] != v {
			t.Errorf("expected %s=%q, got %s=%q", k, v, k, env[k])
		}
	}
}
