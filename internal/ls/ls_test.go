package ls_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/ls"
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
	for _, name := range []string{"farm/shed", "farm/barn", "mine"} {
		_, err := svc.CreateContainer(ctx, name, 4)
		require.NoError(t, err)
	}
	for _, it := range []store.NewItem{
		{Name: "stone", Display: "Stone", Stack: 20},
		{Name: "copper_ore", Display: "Copper Ore", Tags: []string{"ore"}, Stack: 5},
		{Name: "amethyst", Display: "Amethyst", Tags: []string{"gem"}},
	} {
		_, err := svc.Add(ctx, "mine", it, false)
		require.NoError(t, err)
	}
	require.NoError(t, svc.DeleteContainer(ctx, "farm/barn"))

	return svc, func() {
		svc.Close()
		_ = os.Chdir(cwd)
	}
}

func itemNames(r ls.Result) []string {
	var out []string
	for _, it := range r.Items {
		out = append(out, it.InternalName)
	}
	return out
}

func containerNames(r ls.Result) []string {
	var out []string
	for _, c := range r.Containers {
		out = append(out, c.Name)
	}
	return out
}

func TestRun_Containers(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := ls.Run(ctx, &buf, svc, "", ls.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"farm/shed", "mine"}, containerNames(res))
	assert.Equal(t, 2, res.Count())

	res, err = ls.Run(ctx, &bytes.Buffer{}, svc, "farm", ls.Options{IncludeAll: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"farm/barn", "farm/shed"}, containerNames(res))

	res, err = ls.Run(ctx, &bytes.Buffer{}, svc, "", ls.Options{DeletedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"farm/barn"}, containerNames(res))
}

func TestRun_Long(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	var buf bytes.Buffer
	_, err := ls.Run(context.Background(), &buf, svc, "", ls.Options{Long: true, IncludeAll: true})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "farm/barn [deleted]")
}

func TestRun_Tree(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	var buf bytes.Buffer
	_, err := ls.Run(context.Background(), &buf, svc, "mine", ls.Options{Tree: true})
	require.NoError(t, err)
	assert.Equal(t, "└── mine\n", buf.String())
}

func TestRun_Items(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := ls.Run(ctx, &buf, svc, "mine", ls.Options{})
	require.NoError(t, err)
	assert.Equal(t, "mine", res.Container)
	assert.Equal(t, []string{"stone", "copper_ore", "amethyst"}, itemNames(res))
	assert.Contains(t, buf.String(), "Stone x20")

	tests := []struct {
		name string
		opts ls.Options
		want []string
	}{
		{"by name", ls.Options{Sort: ls.SortName}, []string{"amethyst", "copper_ore", "stone"}},
		{"by name reversed", ls.Options{Sort: ls.SortName, Reverse: true}, []string{"stone", "copper_ore", "amethyst"}},
		{"by stack", ls.Options{Sort: ls.SortStack}, []string{"stone", "copper_ore", "amethyst"}},
		{"by tag", ls.Options{Tag: "gem"}, []string{"amethyst"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ls.Run(ctx, &bytes.Buffer{}, svc, "mine", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemNames(res))
		})
	}
}

func TestRun_DeletedContainerItems(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	// Without -A the deleted name is only a prefix with nothing under it.
	res, err := ls.Run(ctx, &bytes.Buffer{}, svc, "farm/barn", ls.Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Container)
	assert.Equal(t, 0, res.Count())

	res, err = ls.Run(ctx, &bytes.Buffer{}, svc, "farm/barn", ls.Options{IncludeAll: true})
	require.NoError(t, err)
	assert.Equal(t, "farm/barn", res.Container)
}
