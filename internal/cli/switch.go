// switch.go implements the default operation: pick a worktree with the
// interactive selector and signal the invoking shell to change into it.
//
// A process cannot change its parent shell's working directory, so the
// "signal" is a line printed to stdout: either the bare path, or — when
// running under the wrapper emitted by "arbor shell-init" — a marker
// line the wrapper scans for and consumes (see shellinit.go).
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/selector"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

const (
	// cdMarkerEnv gates the marker protocol; the shell wrapper sets it.
	cdMarkerEnv = "ARBOR_EMIT_CD_MARKER"

	// cdMarkerPrefix prefixes the selected path on its marker line.
	cdMarkerPrefix = "__ARBOR_CD__="
)

// cancelledMessage is the neutral, non-error report for a dismissed
// selection.
const cancelledMessage = "No worktree selected."

// runSwitch lists the repository's worktrees, drives the selector, and
// emits the cd signal for the chosen path. Cancellation is a successful
// no-op.
func runSwitch(ctx context.Context, cfg *config.Config, sel selector.Selector, out io.Writer) error {
	wm := worktree.NewManager()

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.KindGeneral, "failed to get current directory", err)
	}

	root, err := wm.RepoRoot(cwd)
	if err != nil {
		return err
	}
	logger.Debug().Str("root", root).Msg("resolved repository")

	records, err := wm.List(root)
	if err != nil {
		return err
	}
	logger.Debug().Int("worktrees", len(records)).Msg("listed worktrees")

	selection, err := sel.Select(ctx, records)
	if err != nil {
		return err
	}
	if selection.Cancelled {
		fmt.Fprintln(out, cancelledMessage)
		return nil
	}

	emitChangeDir(out, selection.Record.Path)
	return nil
}

// emitChangeDir publishes the selected path. Under the shell wrapper the
// path goes out as a marker line; otherwise it is printed bare so plain
// invocations still show where the selection points.
func emitChangeDir(out io.Writer, path string) {
	if os.Getenv(cdMarkerEnv) == "1" {
		fmt.Fprintf(out, "%s%s\n", cdMarkerPrefix, path)
		return
	}
	fmt.Fprintln(out, path)
}
