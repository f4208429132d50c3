// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	SourceNotFoundId Id = iota + 1
	StructuredLoadFailedId
	CommandNotFoundId
	UsageId
	ConfigLoadFailedId
	ScriptExecutionFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

// Markdown returns the issue text followed by its links.
func (i *Issue) Markdown() string {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return md.String()
}

// Render renders the issue with the glamour style at stylePath
// ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Environment not found!

The env file could not be read, and no matching environment exists in the
runtime-config file.

## Things you can try:
- Check the path passed as the first argument
- Create the env file:
~~~
$ printf 'NODE_ENV=dev\n' > .env
~~~

- Or add a section to ` + "`.env-cmdrc`" + `:
~~~json
{
  "development": { "NODE_ENV": "dev" }
}
~~~

- Point envcmd at another runtime-config file:
~~~
$ envcmd --rc-file ./config/envs.json development node index.js
~~~`,
		extLinks: []HttpLink{"https://github.com/toddbluhm/env-cmd"},
	}

	structuredLoadFailedIssue = &Issue{
		id: StructuredLoadFailedId,
		mdMsg: `
# Failed to load environment file!

The file exists but its contents could not be decoded into variables.

## Common issues:
- Syntax errors in the JSON, CUE, TOML or YAML document
- The top level is not an object of name/value pairs
- A runtime-config section is not an object
- A CUE value is not concrete

## Things you can try:
- Check the error message above for the specific line/column
- Run with verbose mode for more details:
~~~
$ envcmd --verbose ./env.json node index.js
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The command to run could not be found in your PATH.

## Things you can try:
- Check for typos in the command name
- Use an absolute path to the executable
- Let the built-in shell resolve it:
~~~
$ envcmd --use-shell .env 'my-script && echo done'
~~~`,
	}

	usageIssue = &Issue{
		id: UsageId,
		mdMsg: `
# Missing arguments!

envcmd needs an environment source and a command to run.

## Usage:
~~~
$ envcmd [flags] <env_file | rc_section> <command> [args...]
~~~

## Examples:
~~~
$ envcmd .env node index.js
$ envcmd production,local npm start
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The envcmd configuration file could not be read or does not match the schema.

## Things you can try:
- Check the file passed with --config, or the default location:
~~~
$XDG_CONFIG_HOME/envcmd/config.cue
~~~

- Make sure every field is one of: rc_file, use_shell, no_override, silent,
  verbose, color_scheme
- color_scheme must be "auto", "dark" or "light"
- Remove the file to fall back to the defaults`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Command failed to start!

The command could not be executed.

## Things you can try:
- Make sure the file is executable
- Run with verbose mode to see the spawned command:
~~~
$ envcmd --verbose .env node index.js
~~~`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():        sourceNotFoundIssue,
		structuredLoadFailedIssue.Id():  structuredLoadFailedIssue,
		commandNotFoundIssue.Id():       commandNotFoundIssue,
		usageIssue.Id():                 usageIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	result := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		result = append(result, i)
	}
	slices.SortFunc(result, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return result
}

func Get(id Id) *Issue {
	return issues[id]
}
