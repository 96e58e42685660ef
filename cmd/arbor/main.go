// Package main is the entry point for the arbor CLI.
//
// This binary manages git worktrees kept under a per-repository
// container directory. It delegates all functionality to the
// internal/cli package, which defines cobra commands.
package main

import (
	"github.com/mmr-tortoise/arbor/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. They provide binary identification for --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
