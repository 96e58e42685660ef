// add.go implements the "arbor add" command: create a worktree under the
// container directory, creating its branch from the current HEAD first
// when it does not exist yet.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// NewAddCommand creates the "add" cobra command.
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <dir-name> <branch-name>",
		Short: "Create a worktree for a branch",
		Long: `Create a worktree at <repo-root>/` + config.Default().WorktreeDir + `/<dir-name> checked out
to <branch-name>. When the branch does not exist yet, it is created from
the current HEAD together with the worktree.

Examples:
  arbor add login feature/login
  arbor add hotfix hotfix-crash`,

		// Arity failures must be typed so usage text accompanies them;
		// cobra validates args before any run hooks, so the registry is
		// never touched on a parse error.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return model.NewCLIError(model.KindInvalidArguments,
					fmt.Sprintf("add requires exactly two arguments <dir-name> <branch-name>, got %d", len(args)))
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cfg, args[0], args[1], cmd.OutOrStdout())
		},
	}
}

// runAdd resolves the repository and delegates worktree creation to the
// registry adapter.
func runAdd(cfg *config.Config, dirName, branch string, out io.Writer) error {
	wm := worktree.NewManager()

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.KindGeneral, "failed to get current directory", err)
	}

	root, err := wm.RepoRoot(cwd)
	if err != nil {
		return err
	}

	logger.Debug().Str("branch", branch).Msg("adding worktree")

	path, branchCreated, err := wm.Add(root, cfg.WorktreeDir, dirName, branch)
	if err != nil {
		return err
	}

	printAddResult(out, dirName, branch, path, branchCreated)
	return nil
}

func printAddResult(out io.Writer, dirName, branch, path string, branchCreated bool) {
	if jsonOutput {
		result := map[string]any{
			"dirName":       dirName,
			"branch":        branch,
			"path":          path,
			"branchCreated": branchCreated,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	fmt.Fprintf(out, "Created worktree %q\n", dirName)
	if branchCreated {
		fmt.Fprintf(out, "  Branch: %s (new, from HEAD)\n", branch)
	} else {
		fmt.Fprintf(out, "  Branch: %s\n", branch)
	}
	fmt.Fprintf(out, "  Path:   %s\n", path)
}
