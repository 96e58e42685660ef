// Package model defines the domain types and value objects for the
// arbor CLI.
//
// This package contains pure data structures with no external dependencies.
// Worktree records are transient representations reconstructed from
// `git worktree list` output at runtime — git itself is the registry,
// and there are no persistent state files.
//
// The package also defines the error taxonomy (ErrorKind) and a custom
// error type (CLIError) that carries a kind for message formatting and
// usage display at the single exit point in internal/cli.
package model
