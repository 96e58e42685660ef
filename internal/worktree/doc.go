// Package worktree provides git worktree management operations for the
// arbor CLI.
//
// All git operations are performed via os/exec calls to the git binary,
// rather than using a git library like go-git. This approach:
//   - Uses the exact same git behavior the user sees in their terminal
//   - Delegates branch+worktree creation atomicity to git itself
//   - Covers linked-worktree primitives that library implementations lack
//
// The Manager struct provides methods for resolving the repository root,
// adding, listing, and removing worktrees, and reading/writing global
// git configuration. Listing parses `git worktree list --porcelain`,
// whose key/value lines are split on the first space only, so worktree
// paths containing spaces survive the round trip.
package worktree
