// shellinit.go implements the "arbor shell-init" command, which prints
// the shell wrapper function enabling directory switching.
//
// The wrapper invokes the binary with ARBOR_EMIT_CD_MARKER=1, echoes all
// regular output, and when a __ARBOR_CD__=<path> marker line appears,
// cds into that path. Users add `eval "$(arbor shell-init)"` (or the
// fish equivalent) to their shell rc.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// NewShellInitCommand creates the "shell-init" cobra command.
func NewShellInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell-init [bash|zsh|fish]",
		Short: "Print the shell integration function",
		Long: `Print a shell function "arb" that wraps arbor and changes the current
directory when a worktree is selected.

Without an argument, the shell is inferred from $SHELL.

Examples:
  eval "$(arbor shell-init)"          # bash/zsh rc file
  arbor shell-init fish | source      # fish config`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}
			return runShellInit(shell, cmd.OutOrStdout())
		},
	}
}

func runShellInit(shell string, out io.Writer) error {
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}

	hook, err := shellHook(shell)
	if err != nil {
		return err
	}
	fmt.Fprint(out, hook)
	return nil
}

// shellHook returns the wrapper function source for the given shell.
func shellHook(shell string) (string, error) {
	switch shell {
	case "zsh", "bash":
		return `arb() {
  local _out _rc _cd
  _out="$(ARBOR_EMIT_CD_MARKER=1 command arbor "$@")"
  _rc=$?

  _cd="$(printf '%s\n' "$_out" | sed -n 's/^__ARBOR_CD__=//p' | tail -n 1)"

  if [[ -n "$_out" ]]; then
    printf '%s\n' "$_out" | sed '/^__ARBOR_CD__=/d'
  fi

  if [[ -n "$_cd" ]]; then
    cd "$_cd" || return
  fi

  return $_rc
}
`, nil
	case "fish":
		return `function arb
  set -l _out (env ARBOR_EMIT_CD_MARKER=1 command arbor $argv)
  set -l _rc $status
  set -l _cd ""

  for line in $_out
    if string match -qr '^__ARBOR_CD__=' -- $line
      set _cd (string replace '__ARBOR_CD__=' '' -- $line)
    else
      echo $line
    end
  end

  if test -n "$_cd"
    cd "$_cd"
  end

  return $_rc
end
`, nil
	default:
		return "", model.NewCLIError(model.KindInvalidArguments,
			fmt.Sprintf("unsupported shell %q (supported: bash, zsh, fish)", shell))
	}
}
