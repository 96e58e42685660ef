package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConfig is an in-memory stand-in for git global configuration.
type fakeConfig struct {
	values map[string]string
	sets   int
}

func newFakeConfig() *fakeConfig {
	return &fakeConfig{values: map[string]string{}}
}

func (f *fakeConfig) GlobalConfigGet(key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeConfig) GlobalConfigSet(key, value string) error {
	f.values[key] = value
	f.sets++
	return nil
}

func countPatternLines(t *testing.T, path, pattern string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == pattern {
			count++
		}
	}
	return count
}

// TestEnsureUnsetConfig covers first-time setup: core.excludesfile is
// unset, so the default path is registered and the file created with
// the pattern.
func TestEnsureUnsetConfig(t *testing.T) {
	defaultPath := filepath.Join(t.TempDir(), "git", "ignore")
	git := newFakeConfig()

	c := &Configurator{Git: git, DefaultPath: defaultPath, Pattern: ".worktrees/"}

	res, err := c.Ensure()
	require.NoError(t, err)

	assert.True(t, res.Registered)
	assert.True(t, res.Appended)
	assert.Equal(t, defaultPath, res.Path)
	assert.Equal(t, defaultPath, git.values["core.excludesfile"])
	assert.Equal(t, 1, countPatternLines(t, defaultPath, ".worktrees/"))
}

// TestEnsureIdempotent runs setup twice and verifies exactly one pattern
// line remains.
func TestEnsureIdempotent(t *testing.T) {
	defaultPath := filepath.Join(t.TempDir(), "ignore")
	git := newFakeConfig()

	c := &Configurator{Git: git, DefaultPath: defaultPath, Pattern: ".worktrees/"}

	_, err := c.Ensure()
	require.NoError(t, err)

	res, err := c.Ensure()
	require.NoError(t, err)

	assert.False(t, res.Appended, "second run must not append again")
	assert.Equal(t, 1, countPatternLines(t, defaultPath, ".worktrees/"))
	assert.Equal(t, 1, git.sets, "config key is written once, not per run")
}

// TestEnsureExistingFile verifies existing lines are preserved and only
// the pattern is appended.
func TestEnsureExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(path, []byte("*.log\n.DS_Store\n"), 0644))

	git := newFakeConfig()
	git.values["core.excludesfile"] = path

	c := &Configurator{Git: git, DefaultPath: "/unused", Pattern: ".worktrees/"}

	res, err := c.Ensure()
	require.NoError(t, err)
	assert.False(t, res.Registered)
	assert.True(t, res.Appended)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "*.log\n.DS_Store\n.worktrees/\n", string(data))
}

// TestEnsureNoSubstringMatch guards the anchored full-line match: a line
// merely containing the pattern does not count as present.
func TestEnsureNoSubstringMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(path, []byte("foo/.worktrees/bar\n"), 0644))

	git := newFakeConfig()
	git.values["core.excludesfile"] = path

	c := &Configurator{Git: git, DefaultPath: "/unused", Pattern: ".worktrees/"}

	_, err := c.Ensure()
	require.NoError(t, err)

	assert.Equal(t, 1, countPatternLines(t, path, ".worktrees/"))
}

// TestEnsureMissingTrailingNewline verifies the pattern still lands on
// its own line when the existing file lacks a final newline.
func TestEnsureMissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(path, []byte("*.log"), 0644))

	git := newFakeConfig()
	git.values["core.excludesfile"] = path

	c := &Configurator{Git: git, DefaultPath: "/unused", Pattern: ".worktrees/"}

	_, err := c.Ensure()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "*.log\n.worktrees/\n", string(data))
}

func TestEnsureTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	git := newFakeConfig()
	git.values["core.excludesfile"] = "~/.gitignore_global"

	c := &Configurator{Git: git, DefaultPath: "/unused", Pattern: ".worktrees/"}

	res, err := c.Ensure()
	require.NoError(t, err)

	want := filepath.Join(home, ".gitignore_global")
	assert.Equal(t, want, res.Path)
	assert.Equal(t, 1, countPatternLines(t, want, ".worktrees/"))
}
