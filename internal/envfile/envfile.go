// SPDX-License-Identifier: MPL-2.0

package envfile

// Parse runs the full text pipeline: Normalize, ParseLines and UnquoteValues.
func Parse(content []byte) map[string]string {
	env := ParseLines(Normalize(string(content)))
	UnquoteValues(env)
	return env
}
