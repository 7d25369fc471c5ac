package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func lastRow(t *testing.T, cols string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow("SELECT "+cols+" FROM log ORDER BY id DESC LIMIT 1").Scan(dest...))
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project/.stash")

		Log(Entry{
			Source:    "container:add",
			Author:    "test-user",
			Action:    "add",
			Container: "farm/shed",
			Item:      "abcd1234",
			Success:   true,
		})

		var source, action, container, item, project string
		var success int
		lastRow(t, "source, action, container, item, project, success",
			&source, &action, &container, &item, &project, &success)
		assert.Equal(t, "container:add", source)
		assert.Equal(t, "add", action)
		assert.Equal(t, "farm/shed", container)
		assert.Equal(t, "abcd1234", item)
		assert.Equal(t, hash("/test/project/.stash"), project)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Log(Entry{Source: "container:rm", Action: "remove", Error: "container missing: not found"})

		var success int
		var errMsg string
		lastRow(t, "success, error", &success, &errMsg)
		assert.Equal(t, 0, success)
		assert.Equal(t, "container missing: not found", errMsg)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		assert.NotPanics(t, func() {
			Log(Entry{Source: "test:cmd", Action: "test", Success: true})
		})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project/.stash")
	h2 := hash("/home/user/project/.stash")
	h3 := hash("/home/user/other/.stash")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".stash", "log", "stash-log.db"), DBPath())
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("search entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("search:search", "search").
			Author("test-user").
			Container("chest").
			Query("fish !bait").
			Count(3).
			Write(nil)

		var source, author, container, q string
		var count, success int
		lastRow(t, "source, author, container, query, count, success",
			&source, &author, &container, &q, &count, &success)
		assert.Equal(t, "search:search", source)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, "chest", container)
		assert.Equal(t, "fish !bait", q)
		assert.Equal(t, 3, count)
		assert.Equal(t, 1, success)
	})

	t.Run("with error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("container:add", "add").Container("pouch").Write(errors.New("container is full"))

		var success int
		var errMsg string
		lastRow(t, "success, error", &success, &errMsg)
		assert.Equal(t, 0, success)
		assert.Equal(t, "container is full", errMsg)
	})

	t.Run("zero count is null", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("core:init", "init").Write(nil)

		var count sql.NullInt64
		lastRow(t, "count", &count)
		assert.False(t, count.Valid)
	})

	t.Run("with detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("search:filter", "filter").
			Detail("enabled", true).
			Detail("previous", "ore").
			Write(nil)

		var detail string
		lastRow(t, "detail", &detail)
		assert.Contains(t, detail, `"previous":"ore"`)
		assert.Contains(t, detail, `"enabled":true`)
	})
}
