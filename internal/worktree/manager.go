package worktree

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// Manager provides git worktree operations by invoking the git CLI.
//
// It is stateless — all methods receive the repository path as a
// parameter. The struct exists as a receiver to support future extensions
// such as a configurable git binary path.
type Manager struct{}

// NewManager creates a new worktree Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// RepoRoot returns the absolute path to the top-level directory of the
// git repository containing the given path.
//
// This uses `git rev-parse --show-toplevel`, which works correctly from
// both the main working directory and any linked worktree. When the path
// is not inside a repository, the error carries KindNotARepository.
func (m *Manager) RepoRoot(path string) (string, error) {
	output, err := runGit(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", model.WrapCLIError(model.KindNotARepository, "not inside a git repository", err)
	}
	return strings.TrimSpace(output), nil
}

// ContainerPath returns the directory under the repository root where all
// managed worktrees live. The container is always a strict subdirectory
// of the root; it never equals or escapes it.
func (m *Manager) ContainerPath(repoRoot, container string) string {
	return filepath.Join(repoRoot, container)
}

// BranchExists checks whether a local branch with the given name exists.
//
// This uses `git rev-parse --verify refs/heads/<branch>`, which exits 0
// if the ref exists and non-zero otherwise. The full ref form avoids
// accidentally matching tags or remote-tracking refs with the same name.
func (m *Manager) BranchExists(repoRoot, branch string) bool {
	_, err := runGit(repoRoot, "rev-parse", "--verify", "refs/heads/"+branch)
	return err == nil
}

// Add creates a new worktree at <repoRoot>/<container>/<dirName> and
// returns the target path along with whether the branch was created as
// part of the operation.
//
// Two cases, decided by BranchExists:
//  1. The branch already exists: `git worktree add <path> <branch>`
//     checks it out into the new worktree without creating anything.
//  2. The branch does not exist: `git worktree add -b <branch> <path>`
//     creates the branch at the current HEAD and the worktree together;
//     git guarantees the pair succeeds or fails as a whole.
//
// The branchCreated result reflects the branch check that picked the
// command form, so callers never need to re-query the branch state.
//
// Fails with KindWorktreeAddFailed when the target path already exists
// or the underlying git command refuses (e.g., the branch is already
// checked out in another worktree).
func (m *Manager) Add(repoRoot, container, dirName, branch string) (path string, branchCreated bool, err error) {
	target := filepath.Join(m.ContainerPath(repoRoot, container), dirName)

	if _, err := os.Stat(target); err == nil {
		return "", false, model.NewCLIError(model.KindWorktreeAddFailed,
			fmt.Sprintf("target path already exists: %s", target))
	}

	var args []string
	if m.BranchExists(repoRoot, branch) {
		args = []string{"worktree", "add", target, branch}
	} else {
		branchCreated = true
		args = []string{"worktree", "add", "-b", branch, target}
	}

	if _, err := runGit(repoRoot, args...); err != nil {
		return "", false, model.WrapCLIError(model.KindWorktreeAddFailed,
			fmt.Sprintf("failed to add worktree at %s", target), err)
	}
	return target, branchCreated, nil
}

// List returns records for all worktrees registered with the repository,
// in git's native listing order (the main working directory first, then
// linked worktrees in creation order).
//
// It runs `git worktree list --porcelain`, which produces one block per
// worktree separated by blank lines:
//
//	worktree /path/to/dir
//	HEAD abc123
//	branch refs/heads/main
//
// Markers like "bare" and "detached" appear as standalone keywords.
func (m *Manager) List(repoRoot string) ([]model.WorktreeRecord, error) {
	output, err := runGit(repoRoot, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, model.WrapCLIError(model.KindGeneral, "failed to list worktrees", err)
	}
	return parsePorcelain(output), nil
}

// Remove deletes the worktree at the given path via
// `git worktree remove <path>`.
//
// The --force flag is deliberately never passed: when the worktree has
// uncommitted or unmerged state, git refuses and the refusal surfaces as
// KindWorktreeRemovalFailed with git's reason. The caller owns the
// decision to force-remove manually or abandon.
func (m *Manager) Remove(repoRoot, worktreePath string) error {
	if _, err := runGit(repoRoot, "worktree", "remove", worktreePath); err != nil {
		return model.WrapCLIError(model.KindWorktreeRemovalFailed,
			fmt.Sprintf("failed to remove worktree at %s", worktreePath), err)
	}
	return nil
}

// GlobalConfigGet reads a key from git's global (user-level) configuration.
// Returns an empty string without error when the key is unset — git exits
// with status 1 for missing keys, which is not a failure here.
func (m *Manager) GlobalConfigGet(key string) (string, error) {
	output, err := runGit("", "config", "--global", "--get", key)
	if err != nil {
		// git exits 1 both for a missing key and for a missing global
		// config file; neither is a failure here.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// GlobalConfigSet writes a key in git's global (user-level) configuration.
func (m *Manager) GlobalConfigSet(key, value string) error {
	if _, err := runGit("", "config", "--global", key, value); err != nil {
		return model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to set global git config %s", key), err)
	}
	return nil
}

// runGit executes a git command and returns its stdout output.
//
// When dir is non-empty it is passed via `git -C <dir>`, which makes git
// change into the target directory itself rather than altering this
// process's working directory. Stderr is captured separately and folded
// into the returned error for diagnostics.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), stderrStr, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// parsePorcelain parses `git worktree list --porcelain` output into
// worktree records. Blocks are separated by blank lines; within a block,
// each line is cut at the first space into a key and a value, so values
// (paths, refs) may themselves contain spaces.
func parsePorcelain(output string) []model.WorktreeRecord {
	var records []model.WorktreeRecord

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	var current *model.WorktreeRecord
	flush := func() {
		if current != nil {
			records = append(records, *current)
			current = nil
		}
	}

	for _, line := range lines {
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &model.WorktreeRecord{Path: value}
		case "HEAD":
			if current != nil {
				current.Head = value
			}
		case "branch":
			if current != nil {
				current.Branch = value
			}
		case "bare":
			if current != nil {
				current.Bare = true
			}
			// "detached" is implied by an empty Branch; no field needed.
		}
	}
	flush()

	return records
}
