// SPDX-License-Identifier: MPL-2.0

package envfile

// Unquote removes exactly one pair of enclosing double quotes.
// Values shorter than two characters or not wrapped in '"' are returned as-is.
func Unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// UnquoteValues applies Unquote to every value of env in place.
func UnquoteValues(env map[string]string) {
	for k, v := range env {
		env[k] = Unquote(v)
	}
}
