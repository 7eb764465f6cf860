package state_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quantmind-br/sitedocs-go/internal/state"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	manager := state.NewManager(state.ManagerOptions{
		BaseDir: t.TempDir(),
		Logger:  utils.NewLogger(utils.LoggerOptions{Level: "error"}),
	})

	assert.NotNil(t, manager)
	assert.False(t, manager.IsDisabled())
	_, err := uuid.Parse(manager.RunID())
	assert.NoError(t, err)
}

func TestNewManager_RunIDsDiffer(t *testing.T) {
	a := state.NewManager(state.ManagerOptions{})
	b := state.NewManager(state.ManagerOptions{})
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestManager_Load_StateNotFound(t *testing.T) {
	manager := state.NewManager(state.ManagerOptions{BaseDir: t.TempDir()})

	err := manager.Load(context.Background())
	assert.ErrorIs(t, err, state.ErrStateNotFound)
	assert.Equal(t, 0, manager.Stats())
}

func TestManager_Load_Disabled(t *testing.T) {
	manager := state.NewManager(state.ManagerOptions{BaseDir: t.TempDir(), Disabled: true})
	assert.NoError(t, manager.Load(context.Background()))
}

func TestManager_Load_CorruptedState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, state.StateFileName), []byte("{not json"), 0644))

	err := state.NewManager(state.ManagerOptions{BaseDir: dir}).Load(context.Background())
	assert.ErrorIs(t, err, state.ErrStateCorrupted)
}

func TestManager_Load_VersionMismatch(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(map[string]any{"version": 99, "pages": map[string]any{}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, state.StateFileName), data, 0644))

	err = state.NewManager(state.ManagerOptions{BaseDir: dir}).Load(context.Background())
	assert.ErrorIs(t, err, state.ErrVersionMismatch)
}

func TestManager_Save_NotDirty(t *testing.T) {
	dir := t.TempDir()
	manager := state.NewManager(state.ManagerOptions{BaseDir: dir})

	require.NoError(t, manager.Save(context.Background()))

	_, err := os.Stat(manager.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestManager_Save_Disabled(t *testing.T) {
	dir := t.TempDir()
	manager := state.NewManager(state.ManagerOptions{BaseDir: dir, Disabled: true})
	manager.Update("docs/cli/commands.md", state.PageState{ContentHash: "abc"})

	require.NoError(t, manager.Save(context.Background()))

	_, err := os.Stat(manager.Path())
	assert.True(t, os.IsNotExist(err))
	assert.False(t, manager.Unchanged("docs/cli/commands.md", "abc"))
}

func TestManager_Save_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	manager := state.NewManager(state.ManagerOptions{BaseDir: dir})
	manager.Update("docs/sdk/api.md", state.PageState{ContentHash: "abc"})

	require.NoError(t, manager.Save(context.Background()))
	assert.FileExists(t, filepath.Join(dir, state.StateFileName))
}

func TestManager_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := state.NewManager(state.ManagerOptions{BaseDir: dir})
	first.Update("docs/cli/commands.md", state.PageState{
		ContentHash: "hash-1",
		Source:      "cloud-cli",
		Revision:    "0123456789ab",
		GeneratedAt: generatedAt,
	})
	first.Update("docs/sdk/api.md", state.PageState{ContentHash: "hash-2"})
	require.NoError(t, first.Save(ctx))

	second := state.NewManager(state.ManagerOptions{BaseDir: dir})
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, 2, second.Stats())
	assert.True(t, second.Unchanged("docs/cli/commands.md", "hash-1"))
	assert.False(t, second.Unchanged("docs/cli/commands.md", "hash-other"))
	assert.False(t, second.Unchanged("docs/sdk/quickstart.md", "hash-1"))

	page, ok := second.Page("docs/cli/commands.md")
	require.True(t, ok)
	assert.Equal(t, "cloud-cli", page.Source)
	assert.Equal(t, "0123456789ab", page.Revision)
	assert.True(t, generatedAt.Equal(page.GeneratedAt))

	page, ok = second.Page("docs/sdk/api.md")
	require.True(t, ok)
	assert.False(t, page.GeneratedAt.IsZero())

	var raw state.RunState
	data, err := os.ReadFile(first.Path())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, state.StateVersion, raw.Version)
	assert.Equal(t, first.RunID(), raw.RunID)
	assert.False(t, raw.LastRun.IsZero())
}

func TestManager_Concurrency_Update(t *testing.T) {
	manager := state.NewManager(state.ManagerOptions{BaseDir: t.TempDir()})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := filepath.Join("docs", "page", string(rune('a'+i%26)))
			manager.Update(path, state.PageState{ContentHash: "h"})
			_ = manager.Unchanged(path, "h")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, manager.Stats())
}

func TestRunState(t *testing.T) {
	s := state.NewRunState()
	assert.Equal(t, state.StateVersion, s.Version)
	assert.Equal(t, 0, s.PageCount())

	_, ok := s.GetPage("missing")
	assert.False(t, ok)
}

func TestStateFileName(t *testing.T) {
	assert.Equal(t, ".sitedocs-state.json", state.StateFileName)
}
