package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMaxQuery, c.MaxQuery())
	assert.Equal(t, DefaultMaxName, c.MaxName())
	assert.Equal(t, query.Partial, c.SearchMode())
	assert.Equal(t, options.Static{}, c.Options())
	for _, k := range ValidKeys() {
		assert.False(t, c.IsSet(k), k)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "alice", "alice"},
		{"defaults.filter_items", "ENABLED", "enabled"},
		{"defaults.search_items", "disabled", "disabled"},
		{"search.mode", "Exact", "exact"},
		{"limits.max_query", "64", "64"},
		{"limits.max_name", " 32 ", "32"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var c Config
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSetDefaultClears(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("defaults.filter_items", "enabled"))
	require.NoError(t, c.Set("defaults.filter_items", "default"))
	assert.False(t, c.IsSet("defaults.filter_items"))
}

func TestSetInvalid(t *testing.T) {
	var c Config
	assert.ErrorIs(t, c.Set("nope", "x"), ErrUnknownKey)
	assert.ErrorIs(t, c.Set("search.mode", "fuzzy"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("defaults.search_items", "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_query", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_name", "abc"), ErrInvalidValue)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestOptionsFeedChild(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("defaults.filter_items", "enabled"))

	resolved := options.Child(c.Options(), options.Static{Term: "ore"})
	assert.Equal(t, options.Enabled, resolved.FilterItems())
	assert.Equal(t, "ore", resolved.FilterTerm())
}

func TestAll(t *testing.T) {
	var c Config
	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "partial", all["search.mode"])
	assert.Equal(t, "1024", all["limits.max_query"])
}

func TestSaveAndLoadLocal(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	c := &Config{}
	require.NoError(t, c.Set("search.mode", "exact"))
	require.NoError(t, c.Set("limits.max_name", "40"))
	require.NoError(t, c.SaveScope(ScopeLocal))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, query.Exact, loaded.SearchMode())
	assert.Equal(t, 40, loaded.MaxName())
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	require.NoError(t, os.MkdirAll(".stash", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".stash", "config.yaml"), []byte("limits:\n  max_query: 0\n"), 0644))

	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, os.WriteFile(filepath.Join(".stash", "config.yaml"), []byte("search: [\n"), 0644))
	_, err = Load()
	assert.Error(t, err)
}
