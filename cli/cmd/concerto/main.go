// Executable concerto command-line tool. Run "concerto --help" for
// usage instructions.
package main

import (
	"github.com/sstone1/concerto/cli"
	"github.com/sstone1/concerto/cli/internal/cmd"
)

func main() {
	cli.Execute(cmd.RootCmd)
}
