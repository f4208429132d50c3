// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	cmd "github.com/envcmd/envcmd/cmd/envcmd"
)

func main() {
	os.Exit(cmd.Execute())
}
