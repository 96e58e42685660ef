// Package selector presents the worktree list to the user and returns a
// single choice.
//
// The Selector interface is the injected capability consumed by the cli
// package; the production implementation drives an external interactive
// fuzzy finder (fzf by default) by piping candidate lines to its stdin
// and reading the chosen line from its stdout. Tests substitute a
// deterministic fake.
//
// User dismissal of the prompt (non-zero exit from the finder) and an
// empty candidate set both yield the cancelled selection, never an error.
package selector
