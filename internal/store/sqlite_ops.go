// sqlite_ops.go manages the SQLite connection and shared row helpers.
//
// This is the only file that imports the driver. WAL mode lets the MCP
// server read while the CLI writes; the busy timeout turns short lock waits
// into delays instead of "database is locked" errors.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"sort"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the database at path. The caller must Close it.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// NORMAL is safe under WAL; only the last commit can be lost on an
		// OS crash.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the connection for extensions with their own tables. Extensions
// must not write to core tables.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const containerCols = `id, key, name, capacity, created_at, deleted_at`

func scanContainer(sc scanner) (Container, error) {
	var c Container
	var del sql.NullInt64
	if err := sc.Scan(&c.ID, &c.Key, &c.Name, &c.Capacity, &c.CreatedAt, &del); err != nil {
		return c, err
	}
	if del.Valid {
		c.DeletedAt = &del.Int64
	}
	return c, nil
}

// tagSep separates tags in the aggregated tag column. It cannot appear in a
// tag typed at a terminal.
const tagSep = "\x1f"

// itemSelect selects items joined with their container name and tags.
const itemSelect = `SELECT i.id, i.key, c.name, i.name, i.display, i.category,
		COALESCE((SELECT group_concat(t.tag, char(31)) FROM tags t WHERE t.item_id = i.id), ''),
		i.stack, i.slot, i.created_at
	FROM items i
	JOIN containers c ON c.id = i.container_id`

func scanItem(sc scanner) (Item, error) {
	var it Item
	var tags string
	err := sc.Scan(&it.ID, &it.Key, &it.Container, &it.InternalName, &it.DisplayText,
		&it.CategoryName, &tags, &it.Stack, &it.Slot, &it.CreatedAt)
	if err != nil {
		return it, err
	}
	if tags != "" {
		it.Tags = strings.Split(tags, tagSep)
		sort.Strings(it.Tags)
	}
	return it, nil
}

// scanOne converts sql.ErrNoRows to ErrNotFound.
func scanOne[T any](row *sql.Row, scan func(scanner) (T, error)) (*T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// scanAll collects every row.
func scanAll[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Tx runs fn in a transaction, committing when fn returns nil and rolling
// back otherwise. Context cancellation aborts at the next statement.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID returns a random 8-character key for containers, items and tags.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}
