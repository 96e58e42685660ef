// Package cli implements the cobra-based CLI commands for arbor.
//
// Each subcommand (add, remove, list, setup, shell-init) is defined in
// its own file within this package. This file defines the root command —
// which doubles as the interactive switch operation when invoked without
// arguments — and the single point where errors become exit codes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/deps"
	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/selector"
)

// Global flag variables bound to cobra persistent flags on the root
// command, available to every subcommand.
var (
	// jsonOutput switches command output to structured JSON.
	jsonOutput bool

	// verbose enables debug-level logging on stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags and
// injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// cfg is loaded once per invocation by the root PersistentPreRunE and
// threaded into commands from there.
var cfg *config.Config

// checkDeps and newSelector are indirection points: production wiring by
// default, replaced with fakes in tests.
var (
	checkDeps = deps.Check

	newSelector = func(c *config.Config) selector.Selector {
		return selector.NewCommand(c.Selector.Command, c.Selector.Args...)
	}
)

// NewRootCommand creates and configures the root cobra command.
//
// Invoked bare, the root command runs the interactive switch. Any
// unrecognized first token is rejected before configuration or
// dependency checks run, so parse errors never depend on the
// environment.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Git worktree manager with interactive switching",
		Long: `arbor manages git worktrees kept under a single container directory
inside the repository (.worktrees by default).

Run without arguments to pick a worktree with the fuzzy finder and jump
to it (requires the shell wrapper from "arbor shell-init"). Use "add" to
create a worktree — and its branch, when new — and "remove" to pick one
and delete it. "setup" makes git globally ignore the container directory.`,

		// Errors are formatted at the single exit point in Run; cobra
		// must not print usage or errors on its own.
		SilenceUsage:  true,
		SilenceErrors: true,

		// Unmatched tokens fall through to the root RunE rather than
		// failing inside cobra, so the unknown-command error is typed.
		Args: cobra.ArbitraryArgs,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(verbose)

			// Reject unknown tokens at parse stage, before the
			// dependency check and configuration load.
			if !cmd.HasParent() && len(args) > 0 {
				return model.NewCLIError(model.KindUnknownCommand,
					fmt.Sprintf("unknown command %q", args[0]))
			}

			// help and completion are precondition-free: they must
			// succeed even when the external tools are missing.
			switch cmd.Name() {
			case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded

			return checkDeps("git", cfg.Selector.Command)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd.Context(), cfg, newSelector(cfg), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewAddCommand())
	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewSetupCommand())
	rootCmd.AddCommand(NewShellInitCommand())

	return rootCmd
}

// Execute runs the root command and exits the process. This is the main
// entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(Run(rootCmd))
}

// Run executes the root command and translates the outcome into an exit
// status. It is the sole point that writes failure messages; invalid
// arguments and unknown commands additionally get usage text to guide
// correction.
func Run(rootCmd *cobra.Command) int {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			if cliErr.Kind.ShowsUsage() {
				fmt.Fprint(os.Stderr, rootCmd.UsageString())
			}
		} else {
			printError(err.Error(), nil)
		}
		return model.ExitFailure
	}
	return model.ExitSuccess
}

// printError outputs an error message in the appropriate format (JSON or
// text) based on the --json global flag. Errors always go to stderr;
// stdout is reserved for successful command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]any{
			"error": map[string]any{"message": message},
		}
		if underlying != nil {
			errObj["error"].(map[string]any)["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}
