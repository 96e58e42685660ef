package selector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
)

// Selector is the interactive-choice capability. Implementations must
// not mutate any state; they only map a candidate list to a Selection.
type Selector interface {
	Select(ctx context.Context, records []model.WorktreeRecord) (model.Selection, error)
}

// Command drives an external line-selector binary (fzf by default).
// Candidate lines go to the tool's stdin; the tool renders its UI on the
// terminal and prints the chosen line to stdout. A non-zero exit status
// means the user dismissed the prompt.
type Command struct {
	// Name is the selector binary, resolved via PATH.
	Name string

	// Args are extra arguments passed to the binary (e.g., fzf layout flags).
	Args []string
}

// NewCommand creates a Command selector for the given binary and arguments.
func NewCommand(name string, args ...string) *Command {
	return &Command{Name: name, Args: args}
}

// Select presents the records and returns the user's choice.
//
// Zero candidates short-circuit to the cancelled selection without
// invoking the external tool. The chosen record is recovered by exact
// line match against the candidate lines, so paths containing spaces or
// tabs inside the label never confuse the mapping.
func (c *Command) Select(ctx context.Context, records []model.WorktreeRecord) (model.Selection, error) {
	if len(records) == 0 {
		return model.NoSelection(), nil
	}

	lines := CandidateLines(records)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Interactive finders draw their UI on the terminal via stderr and
	// read keystrokes from /dev/tty; only the final choice lands on stdout.
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf exits 130 on Esc/Ctrl-C and 1 on no match; both are
			// cancellations, not failures.
			return model.NoSelection(), nil
		}
		return model.Selection{}, model.WrapCLIError(model.KindGeneral,
			fmt.Sprintf("failed to run selector %q", c.Name), err)
	}

	chosen := strings.TrimRight(stdout.String(), "\n")
	for i, line := range lines {
		if line == chosen {
			return model.Selected(records[i]), nil
		}
	}

	// The tool printed something that is not one of our candidates
	// (e.g., --print-query configured by the user). Treat as cancelled.
	logger.Warn().Str("selector", c.Name).Str("output", chosen).
		Msg("selector output matched no candidate, treating as cancelled")
	return model.NoSelection(), nil
}

// CandidateLines renders records as selector input, one line per record.
// The label comes first and the path last, separated by a tab, so the
// path — which may contain spaces — is never split into fields.
func CandidateLines(records []model.WorktreeRecord) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Label() + "\t" + r.Path
	}
	return lines
}
