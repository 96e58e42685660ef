package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/arbor/internal/model"
)

func TestShellInitBashZsh(t *testing.T) {
	for _, shell := range []string{"bash", "zsh"} {
		var out bytes.Buffer
		require.NoError(t, runShellInit(shell, &out), "shell %s", shell)

		script := out.String()
		assert.Contains(t, script, "arb() {")
		assert.Contains(t, script, "ARBOR_EMIT_CD_MARKER=1")
		assert.Contains(t, script, "__ARBOR_CD__=")
		assert.Contains(t, script, `cd "$_cd"`)
	}
}

func TestShellInitFish(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runShellInit("fish", &out))

	script := out.String()
	assert.Contains(t, script, "function arb")
	assert.Contains(t, script, "__ARBOR_CD__=")
}

func TestShellInitDefaultsFromEnv(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")

	var out bytes.Buffer
	require.NoError(t, runShellInit("", &out))
	assert.Contains(t, out.String(), "arb() {")
}

func TestShellInitUnsupported(t *testing.T) {
	err := runShellInit("tcsh", &bytes.Buffer{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.KindInvalidArguments, cliErr.Kind)
}
