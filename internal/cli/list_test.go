package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/arbor/internal/config"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/worktree"
)

func TestListText(t *testing.T) {
	repo := setupTestRepo(t)
	chdir(t, repo)

	wm := worktree.NewManager()
	_, _, err := wm.Add(repo, ".worktrees", "wt1", "feat")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runList(config.Default(), &out))

	assert.Contains(t, out.String(), "BRANCH")
	assert.Contains(t, out.String(), "feat")
	assert.Contains(t, out.String(), "wt1")
}

func TestListJSON(t *testing.T) {
	repo := setupTestRepo(t)
	chdir(t, repo)

	wm := worktree.NewManager()
	_, _, err := wm.Add(repo, ".worktrees", "wt1", "feat")
	require.NoError(t, err)

	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var out bytes.Buffer
	require.NoError(t, runList(config.Default(), &out))

	var records []model.WorktreeRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "refs/heads/feat", records[1].Branch)
}
