// Package cmd assembles the concerto executable's subcommands.
package cmd

import (
	"github.com/sstone1/concerto/cli"
)

// RootCmd represents the base "concerto" command when called without
// any subcommands (commit, disclose, verify, version).
var RootCmd = cli.NewRootCommand("concerto",
	"Selective-disclosure Merkle commitment tooling",
	`concerto salts, commits, discloses, and verifies fields of a
schema-typed record without ever revealing the fields you didn't ask
to disclose.`)

func init() {
	RootCmd.AddCommand(cli.NewVersionCommand("concerto"))
	RootCmd.AddCommand(cli.NewCommitCommand())
	RootCmd.AddCommand(cli.NewDiscloseCommand())
	RootCmd.AddCommand(cli.NewVerifyCommand())
}
