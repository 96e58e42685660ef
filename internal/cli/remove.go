// remove.go implements the "arbor remove" command: pick a worktree with
// the interactive selector and ask git to remove it.
//
// The removal is never forced. When the worktree holds uncommitted or
// unmerged state, git refuses and the refusal is surfaced verbatim — the
// user owns the decision to force-remove manually or abandon.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/selector"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Interactively remove a worktree",
		Long: `Pick a worktree with the fuzzy finder and remove it.

Dismissing the finder removes nothing and is not an error. Worktrees
with uncommitted changes are refused by git; resolve or discard the
changes (or use git worktree remove --force) and retry.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), cfg, newSelector(cfg), cmd.OutOrStdout())
		},
	}
}

// runRemove lists worktrees, drives the selector, and removes the chosen
// one. A cancelled selection performs no removal call and succeeds.
func runRemove(ctx context.Context, cfg *config.Config, sel selector.Selector, out io.Writer) error {
	wm := worktree.NewManager()

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.KindGeneral, "failed to get current directory", err)
	}

	root, err := wm.RepoRoot(cwd)
	if err != nil {
		return err
	}

	records, err := wm.List(root)
	if err != nil {
		return err
	}

	selection, err := sel.Select(ctx, records)
	if err != nil {
		return err
	}
	if selection.Cancelled {
		fmt.Fprintln(out, cancelledMessage)
		return nil
	}

	logger.Debug().Str("path", selection.Record.Path).Msg("removing worktree")
	if err := wm.Remove(root, selection.Record.Path); err != nil {
		return err
	}

	printRemoveResult(out, selection.Record)
	return nil
}

func printRemoveResult(out io.Writer, record model.WorktreeRecord) {
	if jsonOutput {
		result := map[string]any{
			"action": "removed",
			"path":   record.Path,
			"branch": record.BranchShort(),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	fmt.Fprintf(out, "Removed worktree at %s\n", record.Path)
}
