// setup.go implements the "arbor setup" command: one-time environment
// configuration that makes git ignore the worktree container directory
// globally. Runs anywhere — no repository context required.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/ignore"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// NewSetupCommand creates the "setup" cobra command.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Globally ignore the worktree container directory",
		Long: `Ensure the global git ignore file contains the worktree container
pattern, so container directories inside repositories are never tracked.

When core.excludesfile is unset, the file is created at git's default
per-user location and registered in the global configuration. Safe to
run any number of times.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cfg, cmd.OutOrStdout())
		},
	}
}

func runSetup(cfg *config.Config, out io.Writer) error {
	defaultPath := cfg.IgnoreFile
	if defaultPath == "" {
		var err error
		defaultPath, err = config.DefaultIgnoreFile()
		if err != nil {
			return err
		}
	}

	c := &ignore.Configurator{
		Git:         worktree.NewManager(),
		DefaultPath: defaultPath,
		Pattern:     cfg.IgnorePattern(),
	}

	res, err := c.Ensure()
	if err != nil {
		return err
	}
	logger.Debug().Str("path", res.Path).Bool("appended", res.Appended).Msg("ensured ignore pattern")

	printSetupResult(out, cfg.IgnorePattern(), res)
	return nil
}

func printSetupResult(out io.Writer, pattern string, res ignore.Result) {
	if jsonOutput {
		result := map[string]any{
			"ignoreFile": res.Path,
			"pattern":    pattern,
			"registered": res.Registered,
			"appended":   res.Appended,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	if res.Registered {
		fmt.Fprintf(out, "Registered %s as the global git ignore file\n", res.Path)
	}
	if res.Appended {
		fmt.Fprintf(out, "Added %q to %s\n", pattern, res.Path)
	} else {
		fmt.Fprintf(out, "%q already present in %s\n", pattern, res.Path)
	}
}
