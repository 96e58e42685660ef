package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

func TestSwitchEmitsSelectedPath(t *testing.T) {
	repo := setupTestRepo(t)
	chdir(t, repo)

	wm := worktree.NewManager()
	target, _, err := wm.Add(repo, ".worktrees", "wt1", "feat")
	require.NoError(t, err)

	sel := &fakeSelector{pick: "feat"}
	var out bytes.Buffer

	require.NoError(t, runSwitch(context.Background(), config.Default(), sel, &out))

	assert.True(t, sel.called)
	assert.Len(t, sel.seen, 2, "selector sees the full worktree list")
	assert.Equal(t, target+"\n", out.String())
}

func TestSwitchEmitsMarkerUnderWrapper(t *testing.T) {
	repo := setupTestRepo(t)
	chdir(t, repo)
	t.Setenv("ARBOR_EMIT_CD_MARKER", "1")

	wm := worktree.NewManager()
	target, _, err := wm.Add(repo, ".worktrees", "wt1", "feat")
	require.NoError(t, err)

	sel := &fakeSelector{pick: "feat"}
	var out bytes.Buffer

	require.NoError(t, runSwitch(context.Background(), config.Default(), sel, &out))

	assert.Equal(t, "__ARBOR_CD__="+target+"\n", out.String())
}

func TestSwitchCancelled(t *testing.T) {
	repo := setupTestRepo(t)
	chdir(t, repo)

	sel := &fakeSelector{} // picks nothing
	var out bytes.Buffer

	require.NoError(t, runSwitch(context.Background(), config.Default(), sel, &out),
		"cancellation is not an error")
	assert.Equal(t, "No worktree selected.\n", out.String())
}

func TestSwitchOutsideRepository(t *testing.T) {
	chdir(t, t.TempDir())

	sel := &fakeSelector{}
	err := runSwitch(context.Background(), config.Default(), sel, &bytes.Buffer{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.KindNotARepository, cliErr.Kind)
	assert.False(t, sel.called, "selector must not run without repository context")
}
