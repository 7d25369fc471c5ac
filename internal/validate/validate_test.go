package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer(t *testing.T) {
	got, err := Container("/farm/shed/", 0)
	require.NoError(t, err)
	assert.Equal(t, "farm/shed", got)

	_, err = Container("", 0)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = Container("a\x00b", 0)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = Container(strings.Repeat("a", 10), 5)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestItem(t *testing.T) {
	got, err := Item("  iridium_ore ", 0)
	require.NoError(t, err)
	assert.Equal(t, "iridium_ore", got)

	_, err = Item("   ", 0)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = Item("abcdef", 3)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestLabel(t *testing.T) {
	assert.NoError(t, Label("", 10))
	assert.NoError(t, Label("Iridium Ore", 0))
	assert.ErrorIs(t, Label("x\x00", 0), ErrInvalidName)
	assert.ErrorIs(t, Label("toolong", 3), ErrNameTooLong)
}

func TestTag(t *testing.T) {
	assert.NoError(t, Tag("edible"))
	assert.ErrorIs(t, Tag(""), ErrInvalidTag)
	assert.ErrorIs(t, Tag("  "), ErrInvalidTag)
	assert.ErrorIs(t, Tag("a\x00"), ErrInvalidTag)
}

func TestQuery(t *testing.T) {
	assert.NoError(t, Query("", 10))
	assert.NoError(t, Query("fish !bait", 0))
	assert.ErrorIs(t, Query(strings.Repeat("x", 11), 10), ErrQueryTooLong)
	assert.ErrorIs(t, Query("a\x00", 10), ErrInvalidQuery)
}
