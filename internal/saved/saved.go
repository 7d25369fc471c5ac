// Package saved keeps named search queries in their own table of the stash
// database. Deleting a saved query only marks it until vacuum.
package saved

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

//go:embed sql/*.sql
var schemas embed.FS

// Query is a saved search. Mode is empty when the query uses the
// configured default.
type Query struct {
	Name      string     `json:"name"`
	Text      string     `json:"query"`
	Mode      string     `json:"mode,omitempty"`
	Author    string     `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ParsedMode returns the saved mode, or def when none was saved.
func (q *Query) ParsedMode(def query.Mode) query.Mode {
	if m, ok := query.ParseMode(q.Mode); ok {
		return m
	}
	return def
}

// Store reads and writes saved queries.
type Store struct {
	db      *sql.DB
	maxName int
}

// Open creates the table if needed.
func Open(db *sql.DB, maxName int) (*Store, error) {
	if err := store.ExecEmbedded(db, schemas, "sql"); err != nil {
		return nil, fmt.Errorf("saved queries schema: %w", err)
	}
	return &Store{db: db, maxName: maxName}, nil
}

// Save stores q under its name, replacing any existing or deleted query of
// that name.
func (s *Store) Save(ctx context.Context, q Query) (*Query, error) {
	name, err := validate.Item(q.Name, s.maxName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("%w: empty query", validate.ErrInvalidQuery)
	}
	if err := validate.Query(q.Text, 0); err != nil {
		return nil, err
	}
	if q.Mode != "" {
		m, ok := query.ParseMode(q.Mode)
		if !ok {
			return nil, fmt.Errorf("%w: mode must be exact or partial", validate.ErrInvalidQuery)
		}
		q.Mode = m.String()
	}
	q.Name = name
	q.CreatedAt = time.Now().Truncate(time.Second)
	q.DeletedAt = nil

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_queries (name, query, mode, author, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			query = excluded.query,
			mode = excluded.mode,
			author = excluded.author,
			created_at = excluded.created_at,
			deleted_at = NULL`,
		q.Name, q.Text, q.Mode, q.Author, q.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("save query %q: %w", q.Name, err)
	}
	return &q, nil
}

// Get returns the live query called name.
func (s *Store) Get(ctx context.Context, name string) (*Query, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, query, mode, author, created_at, deleted_at
		FROM saved_queries WHERE name = ? AND deleted_at IS NULL`, name)
	q, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved query %q: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns saved queries ordered by name.
func (s *Store) List(ctx context.Context, includeDeleted bool) ([]Query, error) {
	stmt := `SELECT name, query, mode, author, created_at, deleted_at FROM saved_queries`
	if !includeDeleted {
		stmt += ` WHERE deleted_at IS NULL`
	}
	stmt += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Query{}
	for rows.Next() {
		q, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Delete marks the query called name as deleted.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE saved_queries SET deleted_at = ? WHERE name = ? AND deleted_at IS NULL`,
		time.Now().Unix(), name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("saved query %q: %w", name, store.ErrNotFound)
	}
	return nil
}

// Vacuum removes deleted queries, only those deleted at least olderThan ago
// when it is non-nil.
func (s *Store) Vacuum(ctx context.Context, olderThan *time.Duration) (int64, error) {
	stmt := `DELETE FROM saved_queries WHERE deleted_at IS NOT NULL`
	var args []any
	if olderThan != nil {
		stmt += ` AND deleted_at <= ?`
		args = append(args, time.Now().Add(-*olderThan).Unix())
	}
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (Query, error) {
	var (
		q       Query
		created int64
		deleted sql.NullInt64
	)
	if err := sc.Scan(&q.Name, &q.Text, &q.Mode, &q.Author, &created, &deleted); err != nil {
		return q, err
	}
	q.CreatedAt = time.Unix(created, 0)
	if deleted.Valid {
		t := time.Unix(deleted.Int64, 0)
		q.DeletedAt = &t
	}
	return q, nil
}
