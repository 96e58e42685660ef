package model

import (
	"fmt"
	"strings"
)

// WorktreeRecord holds metadata about a single git worktree entry
// as parsed from `git worktree list --porcelain` output.
//
// Example porcelain output for a single worktree block:
//
//	worktree /path/to/feature-branch
//	HEAD abc123def456
//	branch refs/heads/feature-branch
type WorktreeRecord struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string `json:"path"`

	// Branch is the full branch reference (e.g., "refs/heads/main").
	// Empty if the worktree is in a detached HEAD state.
	Branch string `json:"branch,omitempty"`

	// Head is the commit SHA the worktree currently points to.
	Head string `json:"head,omitempty"`

	// Bare indicates whether this entry represents a bare repository.
	// Bare repositories appear in `git worktree list` output with a
	// "bare" marker and have no checked-out branch.
	Bare bool `json:"bare,omitempty"`
}

// BranchShort returns the branch name without the "refs/heads/" prefix.
// Returns an empty string for detached or bare worktrees.
func (r WorktreeRecord) BranchShort() string {
	return strings.TrimPrefix(r.Branch, "refs/heads/")
}

// Label returns the identifying label shown to the user for this record:
// the short branch name, or a detached-HEAD marker with an abbreviated
// commit SHA, or "(bare)" for bare repository entries.
func (r WorktreeRecord) Label() string {
	if r.Bare {
		return "(bare)"
	}
	if r.Branch != "" {
		return r.BranchShort()
	}
	head := r.Head
	if len(head) > 12 {
		head = head[:12]
	}
	return fmt.Sprintf("(detached %s)", head)
}

// Selection is the outcome of an interactive worktree choice: either a
// chosen record, or the cancelled sentinel when the user dismissed the
// prompt without picking anything. Cancellation is not an error.
type Selection struct {
	// Record is the chosen worktree. Only meaningful when Cancelled is false.
	Record WorktreeRecord

	// Cancelled is true when the user dismissed the prompt, or when there
	// were no candidates to choose from.
	Cancelled bool
}

// Selected wraps a record in a non-cancelled Selection.
func Selected(r WorktreeRecord) Selection {
	return Selection{Record: r}
}

// NoSelection returns the cancelled sentinel.
func NoSelection() Selection {
	return Selection{Cancelled: true}
}

// ErrorKind classifies CLI failures. Every raised error belongs to exactly
// one kind; the cli package uses the kind to decide whether usage text
// accompanies the error message. All kinds exit with status 1.
type ErrorKind string

const (
	// KindGeneral is an unclassified failure.
	KindGeneral ErrorKind = "general"

	// KindMissingDependency indicates a required external tool
	// (git or the interactive selector) is not installed.
	KindMissingDependency ErrorKind = "missing-dependency"

	// KindNotARepository indicates the current directory is not inside
	// a git repository.
	KindNotARepository ErrorKind = "not-a-repository"

	// KindInvalidArguments indicates a recognized command was invoked
	// with the wrong number or shape of arguments.
	KindInvalidArguments ErrorKind = "invalid-arguments"

	// KindUnknownCommand indicates the first token did not match any
	// known command.
	KindUnknownCommand ErrorKind = "unknown-command"

	// KindWorktreeAddFailed indicates worktree creation failed (target
	// path already exists, branch checked out elsewhere, git refused).
	KindWorktreeAddFailed ErrorKind = "worktree-add-failed"

	// KindWorktreeRemovalFailed indicates git refused to remove a
	// worktree, typically because it has uncommitted or unmerged state.
	KindWorktreeRemovalFailed ErrorKind = "worktree-removal-failed"
)

// ShowsUsage reports whether errors of this kind should be accompanied
// by usage text to guide correction.
func (k ErrorKind) ShowsUsage() bool {
	return k == KindInvalidArguments || k == KindUnknownCommand
}

// Process exit statuses. Every raised error exits with ExitFailure;
// success and user-cancelled selections exit with ExitSuccess.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CLIError is a custom error type that carries an ErrorKind.
// This lets the CLI layer format messages and decide on usage display
// without string matching.
type CLIError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given kind and message.
func NewCLIError(kind ErrorKind, message string) *CLIError {
	return &CLIError{Kind: kind, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(kind ErrorKind, message string, err error) *CLIError {
	return &CLIError{Kind: kind, Message: message, Err: err}
}
