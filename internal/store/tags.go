// tags.go implements item context tags.
//
// Tags belong to an item rather than to a container, so they travel with the
// item when it moves. A tag is only ever present once per item.

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

// Tag adds a context tag to an item.
func (s *SQLiteStore) Tag(ctx context.Context, itemKey, tag string) error {
	if err := validate.Tag(tag); err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		id, err := itemID(ctx, tx, itemKey)
		if err != nil {
			return err
		}
		return addTag(ctx, tx, id, tag)
	})
}

// addTag inserts a tag unless the item already has it.
func addTag(ctx context.Context, q queryer, itemID int64, tag string) error {
	tag = strings.TrimSpace(tag)
	id, err := genID()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `INSERT OR IGNORE INTO tags (id, item_id, tag, created_at) VALUES (?, ?, ?, ?)`,
		id, itemID, tag, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("adding tag %s: %w", tag, err)
	}
	return nil
}

// Untag removes a context tag from an item.
func (s *SQLiteStore) Untag(ctx context.Context, itemKey, tag string) error {
	if err := validate.Tag(tag); err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		id, err := itemID(ctx, tx, itemKey)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE item_id = ? AND tag = ?`, id, strings.TrimSpace(tag))
		return affected(res, err, "untag "+tag+" from "+itemKey)
	})
}

// ListTags returns the tags of one item, or all tags in use when itemKey is
// empty.
func (s *SQLiteStore) ListTags(ctx context.Context, itemKey string) ([]string, error) {
	stmt := `SELECT DISTINCT tag FROM tags`
	var args []any
	if itemKey != "" {
		id, err := itemID(ctx, s.db, itemKey)
		if err != nil {
			return nil, err
		}
		stmt += ` WHERE item_id = ?`
		args = append(args, id)
	}
	stmt += ` ORDER BY tag`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return scanAll(rows, func(sc scanner) (string, error) {
		var t string
		err := sc.Scan(&t)
		return t, err
	})
}

func itemID(ctx context.Context, q queryer, key string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM items WHERE key = ?`, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("item %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("find item %s: %w", key, err)
	}
	return id, nil
}
