// list.go implements the "arbor list" command: print all worktrees
// registered with the current repository, in git's native listing order.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all worktrees",
		Long: `List all worktrees of the current repository with their branch and path.

Examples:
  arbor list
  arbor list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cfg, cmd.OutOrStdout())
		},
	}
}

func runList(cfg *config.Config, out io.Writer) error {
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

	printListResult(out, records)
	return nil
}

func printListResult(out io.Writer, records []model.WorktreeRecord) {
	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BRANCH\tPATH")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\n", r.Label(), r.Path)
	}
	_ = w.Flush()
}
