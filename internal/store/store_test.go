package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stash-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

var opts = store.WriteOptions{MaxName: 256}

func mustContainer(t *testing.T, s store.Store, name string, capacity int) *store.Container {
	t.Helper()
	c, err := s.CreateContainer(context.Background(), name, capacity, opts)
	require.NoError(t, err)
	return c
}

func mustItem(t *testing.T, s store.Store, container string, it store.NewItem) *store.Item {
	t.Helper()
	got, err := s.AddItem(context.Background(), container, it, opts)
	require.NoError(t, err)
	return got
}

// --- Containers ---

func TestStore_CreateContainer(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mustContainer(t, s, " farm/shed/ ", 12)
	assert.Equal(t, "farm/shed", c.Name)
	assert.Equal(t, 12, c.Capacity)
	assert.Len(t, c.Key, 8)

	byName, err := s.Container(ctx, "farm/shed", false)
	require.NoError(t, err)
	assert.Equal(t, c.Key, byName.Key)

	byKey, err := s.Container(ctx, c.Key, false)
	require.NoError(t, err)
	assert.Equal(t, "farm/shed", byKey.Name)
}

func TestStore_CreateContainerDuplicate(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	_, err := s.CreateContainer(ctx, "chest", 0, opts)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// A deleted container still holds its name.
	require.NoError(t, s.DeleteContainer(ctx, "chest"))
	_, err = s.CreateContainer(ctx, "chest", 0, opts)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestStore_CreateContainerInvalid(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.CreateContainer(ctx, "../escape", 0, opts)
	assert.Error(t, err)
	_, err = s.CreateContainer(ctx, "chest", -1, opts)
	assert.Error(t, err)
}

func TestStore_ContainerNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.Container(context.Background(), "missing", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListContainers(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, n := range []string{"farm", "farm/shed", "farm/shed/box", "farmhouse", "mine"} {
		mustContainer(t, s, n, 0)
	}

	all, err := s.ListContainers(ctx, "", false, false)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	farm, err := s.ListContainers(ctx, "farm", false, false)
	require.NoError(t, err)
	var names []string
	for _, c := range farm {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"farm", "farm/shed", "farm/shed/box"}, names)
}

func TestStore_ListContainersLikeEscape(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	mustContainer(t, s, "a_b", 0)
	mustContainer(t, s, "a_b/c", 0)
	mustContainer(t, s, "axb/c", 0)

	got, err := s.ListContainers(context.Background(), "a_b", false, false)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_DeleteRestoreContainer(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	mustItem(t, s, "chest", store.NewItem{Name: "stone", Stack: 5})

	require.NoError(t, s.DeleteContainer(ctx, "chest"))

	_, err := s.Container(ctx, "chest", false)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := s.ListContainers(ctx, "", false, true)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.NotNil(t, deleted[0].DeletedAt)

	all, err := s.AllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "items of deleted containers are hidden")

	require.NoError(t, s.RestoreContainer(ctx, "chest"))
	items, err := s.Items(ctx, "chest")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Stack)
}

func TestStore_DeleteRestoreNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteContainer(ctx, "missing"), store.ErrNotFound)
	mustContainer(t, s, "chest", 0)
	assert.ErrorIs(t, s.RestoreContainer(ctx, "chest"), store.ErrNotFound)
}

func TestStore_RenameContainer(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	mustContainer(t, s, "other", 0)
	it := mustItem(t, s, "chest", store.NewItem{Name: "stone"})

	assert.ErrorIs(t, s.RenameContainer(ctx, "chest", "other", opts), store.ErrAlreadyExists)
	require.NoError(t, s.RenameContainer(ctx, "chest", "farm/chest", opts))

	got, err := s.Item(ctx, it.Key)
	require.NoError(t, err)
	assert.Equal(t, "farm/chest", got.Container)
	assert.ErrorIs(t, s.RenameContainer(ctx, "chest", "x", opts), store.ErrNotFound)
}

// --- Items ---

func TestStore_AddItem(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	mustContainer(t, s, "chest", 0)
	it := mustItem(t, s, "chest", store.NewItem{
		Name:     "iridium_ore",
		Display:  "Iridium Ore",
		Category: "Resource",
		Tags:     []string{"ore", "color_purple"},
		Stack:    3,
	})

	assert.Equal(t, "chest", it.Container)
	assert.Equal(t, "iridium_ore", it.Name())
	assert.Equal(t, "Iridium Ore", it.DisplayName())
	assert.Equal(t, "Resource", it.Category())
	assert.Equal(t, []string{"color_purple", "ore"}, it.ContextTags())
	assert.Equal(t, 3, it.Stack)
	assert.Equal(t, 0, it.Slot)
}

func TestStore_AddItemMergesStack(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 1)
	first := mustItem(t, s, "chest", store.NewItem{Name: "stone", Stack: 10})
	second := mustItem(t, s, "chest", store.NewItem{Name: "stone", Stack: 5, Tags: []string{"rock"}})

	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, 15, second.Stack)
	assert.Equal(t, []string{"rock"}, second.Tags)

	items, err := s.Items(ctx, "chest")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_AddItemFull(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "pouch", 2)
	mustItem(t, s, "pouch", store.NewItem{Name: "a"})
	mustItem(t, s, "pouch", store.NewItem{Name: "b"})

	_, err := s.AddItem(ctx, "pouch", store.NewItem{Name: "c"}, opts)
	assert.ErrorIs(t, err, store.ErrContainerFull)
}

func TestStore_AddItemReusesLowestSlot(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	mustItem(t, s, "chest", store.NewItem{Name: "a"})
	b := mustItem(t, s, "chest", store.NewItem{Name: "b"})
	mustItem(t, s, "chest", store.NewItem{Name: "c"})

	require.NoError(t, s.RemoveItem(ctx, b.Key))
	d := mustItem(t, s, "chest", store.NewItem{Name: "d"})
	assert.Equal(t, 1, d.Slot)
}

func TestStore_AddItemDisplayFallback(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	mustContainer(t, s, "chest", 0)
	it := mustItem(t, s, "chest", store.NewItem{Name: "mystery_box"})
	assert.Equal(t, "mystery_box", it.DisplayName())
	assert.Empty(t, it.ContextTags())
}

func TestStore_AddItemInvalid(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	_, err := s.AddItem(ctx, "chest", store.NewItem{Name: "  "}, opts)
	assert.Error(t, err)
	_, err = s.AddItem(ctx, "chest", store.NewItem{Name: "x", Tags: []string{""}}, opts)
	assert.Error(t, err)
	_, err = s.AddItem(ctx, "missing", store.NewItem{Name: "x"}, opts)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ItemSatisfiesQueryItem(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	mustContainer(t, s, "chest", 0)
	it := mustItem(t, s, "chest", store.NewItem{
		Name: "iridium_ore", Display: "Iridium Ore", Category: "Resource", Tags: []string{"ore"},
	})

	assert.True(t, query.New("iridium AND ore").IsPartialMatch(it))
	assert.True(t, query.New("resource").IsExactMatch(it))
	assert.False(t, query.New("!ore").IsPartialMatch(it))
}

func TestStore_AllItemsOrder(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "b", 0)
	mustContainer(t, s, "a", 0)
	mustItem(t, s, "b", store.NewItem{Name: "x"})
	mustItem(t, s, "a", store.NewItem{Name: "y"})
	mustItem(t, s, "a", store.NewItem{Name: "z"})

	all, err := s.AllItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "y", all[0].InternalName)
	assert.Equal(t, "z", all[1].InternalName)
	assert.Equal(t, "x", all[2].InternalName)
}

func TestStore_RemoveItem(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	it := mustItem(t, s, "chest", store.NewItem{Name: "x", Tags: []string{"t"}})

	require.NoError(t, s.RemoveItem(ctx, it.Key))
	_, err := s.Item(ctx, it.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.RemoveItem(ctx, it.Key), store.ErrNotFound)

	tags, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestStore_MoveItem(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "a", 0)
	mustContainer(t, s, "b", 0)
	mustItem(t, s, "b", store.NewItem{Name: "filler"})
	it := mustItem(t, s, "a", store.NewItem{Name: "x"})

	moved, err := s.MoveItem(ctx, it.Key, "b")
	require.NoError(t, err)
	assert.Equal(t, it.Key, moved.Key)
	assert.Equal(t, "b", moved.Container)
	assert.Equal(t, 1, moved.Slot)
}

func TestStore_MoveItemMerges(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "a", 0)
	mustContainer(t, s, "b", 0)
	src := mustItem(t, s, "a", store.NewItem{Name: "stone", Stack: 4, Tags: []string{"rock", "grey"}})
	dst := mustItem(t, s, "b", store.NewItem{Name: "stone", Stack: 6, Tags: []string{"rock"}})

	got, err := s.MoveItem(ctx, src.Key, "b")
	require.NoError(t, err)
	assert.Equal(t, dst.Key, got.Key)
	assert.Equal(t, 10, got.Stack)
	assert.Equal(t, []string{"grey", "rock"}, got.Tags)

	_, err = s.Item(ctx, src.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_MoveItemFull(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "a", 0)
	mustContainer(t, s, "b", 1)
	mustItem(t, s, "b", store.NewItem{Name: "filler"})
	it := mustItem(t, s, "a", store.NewItem{Name: "x"})

	_, err := s.MoveItem(ctx, it.Key, "b")
	assert.ErrorIs(t, err, store.ErrContainerFull)
}

// --- Tags ---

func TestStore_Tags(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	it := mustItem(t, s, "chest", store.NewItem{Name: "x"})

	require.NoError(t, s.Tag(ctx, it.Key, "gem"))
	require.NoError(t, s.Tag(ctx, it.Key, "gem"), "tagging twice is a no-op")
	require.NoError(t, s.Tag(ctx, it.Key, "blue"))

	tags, err := s.ListTags(ctx, it.Key)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "gem"}, tags)

	require.NoError(t, s.Untag(ctx, it.Key, "gem"))
	assert.ErrorIs(t, s.Untag(ctx, it.Key, "gem"), store.ErrNotFound)
	assert.ErrorIs(t, s.Tag(ctx, "nokey123", "gem"), store.ErrNotFound)
}

func TestStore_ListAllTags(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)
	mustItem(t, s, "chest", store.NewItem{Name: "x", Tags: []string{"b", "a"}})
	mustItem(t, s, "chest", store.NewItem{Name: "y", Tags: []string{"a", "c"}})

	tags, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tags)
}

// --- Options ---

func TestStore_Options(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "chest", 0)

	empty, err := s.Options(ctx, "chest")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = s.Option(ctx, "chest", "k")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetOption(ctx, "chest", "k", "v1"))
	require.NoError(t, s.SetOption(ctx, "chest", "k", "v2"))
	v, err := s.Option(ctx, "chest", "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.ReplaceOptions(ctx, "chest", map[string]string{"a": "1", "b": "2"}))
	all, err := s.Options(ctx, "chest")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)

	require.NoError(t, s.DeleteOption(ctx, "chest", "a"))
	require.NoError(t, s.DeleteOption(ctx, "chest", "a"))
	all, err = s.Options(ctx, "chest")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b": "2"}, all)
}

// --- Maintenance ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "a", 0)
	mustContainer(t, s, "b", 0)
	mustItem(t, s, "a", store.NewItem{Name: "x", Category: "Resource", Stack: 3, Tags: []string{"t1"}})
	mustItem(t, s, "a", store.NewItem{Name: "y", Category: "Fish", Stack: 2, Tags: []string{"t1", "t2"}})
	require.NoError(t, s.DeleteContainer(ctx, "b"))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.Containers)
	assert.EqualValues(t, 1, st.DeletedContainers)
	assert.EqualValues(t, 2, st.Items)
	assert.EqualValues(t, 5, st.Units)
	assert.EqualValues(t, 2, st.Tags)
	assert.EqualValues(t, 2, st.Categories)
	assert.NotZero(t, st.OldestDeletedAt)
}

func TestStore_Vacuum(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "keep", 0)
	mustContainer(t, s, "gone", 0)
	mustItem(t, s, "keep", store.NewItem{Name: "x", Tags: []string{"t"}})
	mustItem(t, s, "gone", store.NewItem{Name: "y", Tags: []string{"u"}})
	require.NoError(t, s.SetOption(ctx, "gone", "k", "v"))
	require.NoError(t, s.DeleteContainer(ctx, "gone"))

	n, err := s.Vacuum(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "tag, item, option and container")

	_, err = s.Container(ctx, "gone", true)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The name is free again.
	mustContainer(t, s, "gone", 0)

	tags, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, tags)
}

func TestStore_VacuumOlderThan(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "recent", 0)
	require.NoError(t, s.DeleteContainer(ctx, "recent"))

	hour := time.Hour
	n, err := s.Vacuum(ctx, &hour, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Container(ctx, "recent", true)
	assert.NoError(t, err)
}

func TestStore_VacuumPrefix(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mustContainer(t, s, "farm/a", 0)
	mustContainer(t, s, "mine/b", 0)
	require.NoError(t, s.DeleteContainer(ctx, "farm/a"))
	require.NoError(t, s.DeleteContainer(ctx, "mine/b"))

	n, err := s.Vacuum(ctx, nil, "farm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := s.ListContainers(ctx, "", false, true)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "mine/b", left[0].Name)
}

func TestStore_Checkpoint(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	mustContainer(t, s, "chest", 0)
	assert.NoError(t, s.Checkpoint(context.Background()))
}
