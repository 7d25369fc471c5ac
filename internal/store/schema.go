// schema.go embeds the SQLite schema and runs it.
//
// Each table lives in its own file under sql/, executed in name order (hence
// the numeric prefixes). Every statement uses IF NOT EXISTS so Init can run
// against an existing database. Extensions with their own tables follow the
// same pattern:
//
//	//go:embed sql/*.sql
//	var schemas embed.FS
//
//	func (e *Extension) Init(ctx extension.Context) error {
//	    return store.ExecEmbedded(ctx.DB(), schemas, "sql")
//	}

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the container, item, tag or option does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a container name is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrContainerFull is returned when an item needs a slot and none is free.
	ErrContainerFull = errors.New("container is full")
)

// ExecEmbedded executes every file in dir of fsys in name order.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
