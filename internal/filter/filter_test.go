package filter_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/stash/internal/filter"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/store"
)

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

	ctx := context.Background()
	_, err = svc.CreateContainer(ctx, "fridge", 0)
	require.NoError(t, err)
	for _, it := range []store.NewItem{
		{Name: "carp", Display: "Carp", Category: "Fish"},
		{Name: "stone", Display: "Stone", Category: "Resource"},
		{Name: "tuna", Display: "Tuna", Category: "Fish"},
	} {
		_, err := svc.Add(ctx, "fridge", it, false)
		require.NoError(t, err)
	}

	return svc, func() {
		svc.Close()
		_ = os.Chdir(cwd)
	}
}

func ptr(s string) *string { return &s }

func TestSet(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := filter.Set(ctx, &buf, svc, "fridge", filter.Options{Term: ptr("fish"), Enable: true})
	require.NoError(t, err)

	assert.False(t, res.Before.Enabled)
	assert.True(t, res.After.Enabled)
	assert.Equal(t, 2, res.After.Accepted)
	assert.Equal(t, 1, res.After.Rejected)
	assert.Equal(t, 1, res.Diff.Removed)
	assert.Equal(t, 0, res.Diff.Added)
	assert.Contains(t, buf.String(), "- stone")
	assert.Contains(t, buf.String(), `+++ accepted ("fish")`)

	md, err := svc.Options(ctx, "fridge")
	require.NoError(t, err)
	assert.Equal(t, options.Enabled, md.FilterItems())
	assert.Equal(t, "fish", md.FilterTerm())

	// Existing items stay even though the filter now refuses one.
	items, err := svc.Items(ctx, "fridge")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSet_DryRun(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := filter.Set(ctx, &bytes.Buffer{}, svc, "fridge", filter.Options{Term: ptr("stone"), Enable: true, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Diff.Removed)

	md, err := svc.Options(ctx, "fridge")
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestSet_Unchanged(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	var buf bytes.Buffer
	res, err := filter.Set(context.Background(), &buf, svc, "fridge", filter.Options{Term: ptr("fish")})
	require.NoError(t, err)
	assert.False(t, res.Diff.Changed())
	assert.Equal(t, "fridge: accepted items unchanged (3)\n", buf.String())
}

func TestSet_Conflict(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := filter.Set(context.Background(), &bytes.Buffer{}, svc, "fridge", filter.Options{Enable: true, Disable: true})
	assert.ErrorIs(t, err, filter.ErrConflictingFlags)
}

func TestGet(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := filter.Set(ctx, &bytes.Buffer{}, svc, "fridge", filter.Options{Term: ptr("fish"), Enable: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	s, err := filter.Get(ctx, &buf, svc, "fridge")
	require.NoError(t, err)
	assert.Equal(t, filter.Settings{
		Container: "fridge", Enabled: true, Feature: "enabled", Term: "fish",
		Search: "default", Accepted: 2, Rejected: 1,
	}, s)
	assert.Contains(t, buf.String(), "filter:    enabled (enabled)")

	_, err = filter.Get(ctx, &buf, svc, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
