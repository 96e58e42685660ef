package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

// isolateGlobalGit points git's global config and the home directory at
// temp locations so setup tests never touch real user state.
func isolateGlobalGit(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
	return home
}

// TestSetupFirstRun covers the scenario where the global ignore file is
// unset: the default per-user file is created with the pattern and the
// config key is written.
func TestSetupFirstRun(t *testing.T) {
	home := isolateGlobalGit(t)

	var out bytes.Buffer
	require.NoError(t, runSetup(config.Default(), &out))

	ignorePath := filepath.Join(home, ".config", "git", "ignore")

	data, err := os.ReadFile(ignorePath)
	require.NoError(t, err)
	assert.Equal(t, ".worktrees/\n", string(data))

	wm := worktree.NewManager()
	val, err := wm.GlobalConfigGet("core.excludesfile")
	require.NoError(t, err)
	assert.Equal(t, ignorePath, val)

	assert.Contains(t, out.String(), "Registered")
	assert.Contains(t, out.String(), "Added")
}

// TestSetupIdempotent runs setup twice and verifies exactly one pattern
// line remains in the ignore file.
func TestSetupIdempotent(t *testing.T) {
	home := isolateGlobalGit(t)

	require.NoError(t, runSetup(config.Default(), &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, runSetup(config.Default(), &out))

	data, err := os.ReadFile(filepath.Join(home, ".config", "git", "ignore"))
	require.NoError(t, err)

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == ".worktrees/" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), "already present")
}

// TestSetupRespectsExistingExcludesFile verifies an already-configured
// ignore file is appended to, not replaced.
func TestSetupRespectsExistingExcludesFile(t *testing.T) {
	isolateGlobalGit(t)

	existing := filepath.Join(t.TempDir(), "my-ignores")
	require.NoError(t, os.WriteFile(existing, []byte("*.swp\n"), 0644))

	wm := worktree.NewManager()
	require.NoError(t, wm.GlobalConfigSet("core.excludesfile", existing))

	require.NoError(t, runSetup(config.Default(), &bytes.Buffer{}))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "*.swp\n.worktrees/\n", string(data))

	// The config key still points at the user's own file.
	val, err := wm.GlobalConfigGet("core.excludesfile")
	require.NoError(t, err)
	assert.Equal(t, existing, val)
}

// TestSetupOutsideRepository verifies setup needs no repository context.
func TestSetupOutsideRepository(t *testing.T) {
	isolateGlobalGit(t)
	chdir(t, t.TempDir())

	require.NoError(t, runSetup(config.Default(), &bytes.Buffer{}))
}
