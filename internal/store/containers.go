// containers.go implements container lifecycle operations.
//
// Names are normalised by validate.Container on every entry point, so
// "farm/shed/" and "farm/shed" address the same container.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/stash/internal/validate"
)

// CreateContainer adds an empty container.
func (s *SQLiteStore) CreateContainer(ctx context.Context, name string, capacity int, opts WriteOptions) (*Container, error) {
	name, err := validate.Container(name, opts.MaxName)
	if err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must be >= 0, got %d", capacity)
	}

	var out *Container
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM containers WHERE name = ?`, name).Scan(&n); err != nil {
			return fmt.Errorf("check container %s: %w", name, err)
		}
		if n > 0 {
			return fmt.Errorf("container %s: %w", name, ErrAlreadyExists)
		}

		key, err := genID()
		if err != nil {
			return err
		}
		now := time.Now().Unix()
		res, err := tx.ExecContext(ctx, `INSERT INTO containers (key, name, capacity, created_at) VALUES (?, ?, ?, ?)`,
			key, name, capacity, now)
		if err != nil {
			return fmt.Errorf("insert container %s: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert container %s: %w", name, err)
		}
		out = &Container{ID: id, Key: key, Name: name, Capacity: capacity, CreatedAt: now}
		return nil
	})
	return out, err
}

// Container looks a container up by name or key.
func (s *SQLiteStore) Container(ctx context.Context, nameOrKey string, includeDeleted bool) (*Container, error) {
	return containerByName(ctx, s.db, nameOrKey, includeDeleted)
}

// containerByName resolves a name or key inside q, which may be a transaction.
func containerByName(ctx context.Context, q queryer, nameOrKey string, includeDeleted bool) (*Container, error) {
	name := nameOrKey
	if norm, err := validate.Container(nameOrKey, 0); err == nil {
		name = norm
	}

	stmt := `SELECT ` + containerCols + ` FROM containers WHERE (name = ? OR key = ?)`
	if !includeDeleted {
		stmt += ` AND deleted_at IS NULL`
	}
	// A name match wins over a key match.
	stmt += ` ORDER BY name = ? DESC LIMIT 1`

	c, err := scanOne(q.QueryRowContext(ctx, stmt, name, nameOrKey, name), scanContainer)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("container %s: %w", nameOrKey, ErrNotFound)
		}
		return nil, fmt.Errorf("get container %s: %w", nameOrKey, err)
	}
	return c, nil
}

// ListContainers returns containers named prefix or nested below it.
func (s *SQLiteStore) ListContainers(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]Container, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + containerCols + ` FROM containers`)

	var conds []string
	var args []any
	if prefix != "" {
		p, err := validate.Container(prefix, 0)
		if err != nil {
			return nil, err
		}
		conds = append(conds, `(name = ? OR name LIKE ? ESCAPE '\')`)
		args = append(args, p, escapeLike(p)+"/%")
	}
	switch {
	case deletedOnly:
		conds = append(conds, `deleted_at IS NOT NULL`)
	case !includeDeleted:
		conds = append(conds, `deleted_at IS NULL`)
	}
	if len(conds) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conds, ` AND `))
	}
	b.WriteString(` ORDER BY name`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return scanAll(rows, scanContainer)
}

// DeleteContainer soft-deletes a container. Its items stay in place and
// come back with RestoreContainer.
func (s *SQLiteStore) DeleteContainer(ctx context.Context, name string) error {
	name, err := validate.Container(name, 0)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE containers SET deleted_at = ? WHERE name = ? AND deleted_at IS NULL`,
		time.Now().Unix(), name)
	return affected(res, err, "delete container "+name)
}

// RestoreContainer clears a soft delete.
func (s *SQLiteStore) RestoreContainer(ctx context.Context, name string) error {
	name, err := validate.Container(name, 0)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE containers SET deleted_at = NULL WHERE name = ? AND deleted_at IS NOT NULL`, name)
	return affected(res, err, "restore container "+name)
}

// RenameContainer changes a container's name.
func (s *SQLiteStore) RenameContainer(ctx context.Context, from, to string, opts WriteOptions) error {
	from, err := validate.Container(from, 0)
	if err != nil {
		return err
	}
	to, err = validate.Container(to, opts.MaxName)
	if err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM containers WHERE name = ?`, to).Scan(&n); err != nil {
			return fmt.Errorf("check container %s: %w", to, err)
		}
		if n > 0 {
			return fmt.Errorf("container %s: %w", to, ErrAlreadyExists)
		}
		res, err := tx.ExecContext(ctx, `UPDATE containers SET name = ? WHERE name = ? AND deleted_at IS NULL`, to, from)
		return affected(res, err, "rename container "+from)
	})
}

// affected turns an Exec result into ErrNotFound when no row changed.
func affected(res sql.Result, err error, what string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so a name matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
