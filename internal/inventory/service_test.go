package inventory_test

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// recorder captures events fired by the service under test.
type recorder struct {
	mu     sync.Mutex
	events []extension.Event
}

func (r *recorder) Name() string                  { return "test-recorder" }
func (r *recorder) Commands() []*cobra.Command    { return nil }
func (r *recorder) MCPTools() []extension.MCPTool { return nil }

func (r *recorder) HandleEvent(_ extension.Context, e extension.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) take() []extension.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

var events = &recorder{}

func init() {
	extension.Register(events)
}

// setupService creates a temporary service and returns it along with a cleanup function.
func setupService(t *testing.T) (*inventory.Service, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))

	require.NoError(t, inventory.Init(true, "", false, ""))

	svc, err := inventory.New("")
	require.NoError(t, err)
	svc.SetExtensionContext(extension.NewContext(svc, svc.DB(), nil))
	events.take()

	cleanup := func() {
		svc.Close()
		_ = os.Chdir(cwd)
	}
	return svc, cleanup
}

func TestNew_NotInitialised(t *testing.T) {
	tmpDir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(cwd) }()

	_, err = inventory.New("")
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}

func TestService_ContainerLifecycle(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "farm/shed", 0)
	require.NoError(t, err)
	require.NoError(t, svc.RenameContainer(ctx, "farm/shed", "farm/barn"))
	require.NoError(t, svc.DeleteContainer(ctx, "farm/barn"))
	require.NoError(t, svc.RestoreContainer(ctx, "farm/barn/"))

	var types []extension.EventType
	var names []string
	for _, e := range events.take() {
		types = append(types, e.EventType())
		names = append(names, e.EventContainer())
	}
	assert.Equal(t, []extension.EventType{
		extension.EventContainerCreate,
		extension.EventContainerRename,
		extension.EventContainerDelete,
		extension.EventContainerRestore,
	}, types)
	assert.Equal(t, []string{"farm/shed", "farm/barn", "farm/barn", "farm/barn"}, names)
}

func TestService_Load(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "chest", 0)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "chest", store.NewItem{Name: "stone", Stack: 3}, false)
	require.NoError(t, err)
	require.NoError(t, svc.SetOption(ctx, "chest", options.KeyLabel, "Rock Box"))

	c, err := svc.Load(ctx, "chest")
	require.NoError(t, err)
	assert.Equal(t, "chest", c.Name())
	assert.Equal(t, "Rock Box", c.Label())
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Stack)
	assert.True(t, c.Searchable())

	_, err = svc.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_LoadAll(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	for _, n := range []string{"farm/a", "farm/b", "mine"} {
		_, err := svc.CreateContainer(ctx, n, 0)
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "farm/b", store.NewItem{Name: "x"}, false)
	require.NoError(t, err)

	all, err := svc.LoadAll(ctx, "farm")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Items)
	assert.Len(t, all[1].Items, 1)
}

func TestService_AddRespectsFilter(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "fish", 0)
	require.NoError(t, err)
	require.NoError(t, svc.SetOption(ctx, "fish", options.KeyFilterTerm, "Fish"))
	require.NoError(t, svc.SetOption(ctx, "fish", options.KeyFilterItems, "enabled"))
	events.take()

	_, err = svc.Add(ctx, "fish", store.NewItem{Name: "sardine", Category: "Fish"}, false)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "fish", store.NewItem{Name: "stone", Category: "Resource"}, false)
	assert.ErrorIs(t, err, inventory.ErrFiltered)

	forced, err := svc.Add(ctx, "fish", store.NewItem{Name: "stone", Category: "Resource"}, true)
	require.NoError(t, err)
	assert.Equal(t, "stone", forced.InternalName)

	evs := events.take()
	require.Len(t, evs, 2)
	assert.False(t, evs[0].(extension.ItemAddEvent).Forced)
	assert.True(t, evs[1].(extension.ItemAddEvent).Forced)
}

func TestService_AddMergeSeesExistingTags(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "gems", 0)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "gems", store.NewItem{Name: "amethyst", Tags: []string{"gem"}}, false)
	require.NoError(t, err)
	require.NoError(t, svc.SetOptions(ctx, "gems", options.ModData{
		options.ModFilterItems: "enabled",
		options.ModFilterTerm:  "gem",
	}))

	// The new units carry no tags, but the stack they merge into does.
	it, err := svc.Add(ctx, "gems", store.NewItem{Name: "amethyst", Stack: 2}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Stack)
}

func TestService_AddMergeKeepsStackDisplay(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "rocks", 0)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "rocks", store.NewItem{Name: "rock_01", Display: "Pebble"}, false)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "rocks", store.NewItem{Name: "rock_02", Display: "Stone"}, false)
	require.NoError(t, err)
	require.NoError(t, svc.SetOptions(ctx, "rocks", options.ModData{
		options.ModFilterItems: "enabled",
		options.ModFilterTerm:  "stone",
	}))

	// The stack stays "Pebble", which the filter rejects.
	_, err = svc.Add(ctx, "rocks", store.NewItem{Name: "rock_01", Display: "Stone", Stack: 5}, false)
	assert.ErrorIs(t, err, inventory.ErrFiltered)

	// The stack stays "Stone", which the filter accepts.
	it, err := svc.Add(ctx, "rocks", store.NewItem{Name: "rock_02", Display: "Pebble", Stack: 5}, false)
	require.NoError(t, err)
	assert.Equal(t, "Stone", it.DisplayText)
	assert.Equal(t, 6, it.Stack)

	c, err := svc.Load(ctx, "rocks")
	require.NoError(t, err)
	require.Len(t, c.Accepted(), 1)
	assert.Equal(t, "rock_02", c.Accepted()[0].InternalName)
}

func TestService_MoveMergeKeepsStackDisplay(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	for _, n := range []string{"bag", "rocks"} {
		_, err := svc.CreateContainer(ctx, n, 0)
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "rocks", store.NewItem{Name: "rock_01", Display: "Pebble"}, false)
	require.NoError(t, err)
	src, err := svc.Add(ctx, "bag", store.NewItem{Name: "rock_01", Display: "Stone"}, false)
	require.NoError(t, err)
	require.NoError(t, svc.SetOptions(ctx, "rocks", options.ModData{
		options.ModFilterItems: "enabled",
		options.ModFilterTerm:  "stone",
	}))

	_, err = svc.MoveItem(ctx, src.Key, "rocks", false)
	assert.ErrorIs(t, err, inventory.ErrFiltered)
}

func TestService_DefaultsFromConfig(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(".stash", 0755))
	require.NoError(t, os.WriteFile(".stash/config.yaml", []byte("defaults:\n  filter_items: enabled\nsearch:\n  mode: exact\n"), 0644))
	require.NoError(t, svc.ReloadConfig())
	assert.Equal(t, query.Exact, svc.SearchMode())
	assert.Equal(t, options.Enabled, svc.Defaults().FilterItems())

	_, err := svc.CreateContainer(ctx, "box", 0)
	require.NoError(t, err)
	require.NoError(t, svc.SetOption(ctx, "box", options.KeyFilterTerm, "ore"))

	_, err = svc.Add(ctx, "box", store.NewItem{Name: "stone"}, false)
	assert.ErrorIs(t, err, inventory.ErrFiltered)
}

func TestService_MoveItem(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	for _, n := range []string{"a", "b", "fish"} {
		_, err := svc.CreateContainer(ctx, n, 0)
		require.NoError(t, err)
	}
	require.NoError(t, svc.SetOptions(ctx, "fish", options.ModData{
		options.ModFilterItems: "enabled",
		options.ModFilterTerm:  "Fish",
	}))
	src, err := svc.Add(ctx, "a", store.NewItem{Name: "stone", Stack: 2}, false)
	require.NoError(t, err)
	dst, err := svc.Add(ctx, "b", store.NewItem{Name: "stone", Stack: 1}, false)
	require.NoError(t, err)
	events.take()

	_, err = svc.MoveItem(ctx, src.Key, "fish", false)
	assert.ErrorIs(t, err, inventory.ErrFiltered)

	moved, err := svc.MoveItem(ctx, src.Key, "b", false)
	require.NoError(t, err)
	assert.Equal(t, dst.Key, moved.Key)
	assert.Equal(t, 3, moved.Stack)

	evs := events.take()
	require.Len(t, evs, 1)
	mv := evs[0].(extension.ItemMoveEvent)
	assert.Equal(t, "a", mv.From)
	assert.Equal(t, "b", mv.Container)
	assert.True(t, mv.Merged)
}

func TestService_RemoveAndTags(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "chest", 0)
	require.NoError(t, err)
	it, err := svc.Add(ctx, "chest", store.NewItem{Name: "x"}, false)
	require.NoError(t, err)
	events.take()

	require.NoError(t, svc.Tag(ctx, it.Key, " gem "))
	tags, err := svc.ListTags(ctx, it.Key)
	require.NoError(t, err)
	assert.Equal(t, []string{"gem"}, tags)
	require.NoError(t, svc.Untag(ctx, it.Key, "gem"))
	assert.ErrorIs(t, svc.Tag(ctx, it.Key, " "), validate.ErrInvalidTag)

	require.NoError(t, svc.RemoveItem(ctx, it.Key))
	assert.ErrorIs(t, svc.RemoveItem(ctx, it.Key), store.ErrNotFound)

	var types []extension.EventType
	for _, e := range events.take() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []extension.EventType{extension.EventTagAdd, extension.EventTagRemove, extension.EventItemRemove}, types)
}

func TestService_Options(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "chest", 0)
	require.NoError(t, err)
	events.take()

	assert.ErrorIs(t, svc.SetOption(ctx, "chest", "colour", "red"), options.ErrUnknownOption)
	assert.ErrorIs(t, svc.SetOption(ctx, "chest", options.KeySearchItems, "maybe"), options.ErrInvalidValue)

	require.NoError(t, svc.SetOption(ctx, "chest", options.KeySearchItems, "disabled"))
	// Setting the same value again is not a change.
	require.NoError(t, svc.SetOption(ctx, "chest", options.KeySearchItems, "Disabled"))

	md, err := svc.Options(ctx, "chest")
	require.NoError(t, err)
	assert.Equal(t, options.Disabled, md.SearchItems())
	assert.Len(t, events.take(), 1)
}

func TestService_CheckQuery(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	assert.NoError(t, svc.CheckQuery("fish !bait"))
	assert.ErrorIs(t, svc.CheckQuery(strings.Repeat("a", 2000)), validate.ErrQueryTooLong)
}

func TestService_VacuumAndStats(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.CreateContainer(ctx, "old", 0)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "old", store.NewItem{Name: "x"}, false)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteContainer(ctx, "old"))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.DeletedContainers)

	n, err := svc.Vacuum(ctx, nil, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = svc.Vacuum(ctx, nil, "../x")
	assert.Error(t, err)
	assert.NoError(t, svc.Checkpoint(ctx))
}

func TestService_Tx(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.DB().Exec(`CREATE TABLE scratch (v TEXT)`)
	require.NoError(t, err)

	err = svc.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO scratch (v) VALUES ('a')`)
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, svc.DB().QueryRow(`SELECT COUNT(*) FROM scratch`).Scan(&n))
	assert.Equal(t, 1, n)
}
