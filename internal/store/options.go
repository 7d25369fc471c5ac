// options.go stores the per-container option dictionary.
//
// The store treats keys and values as opaque strings; the options package
// gives them meaning.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Option returns one value of a container's dictionary.
func (s *SQLiteStore) Option(ctx context.Context, container, key string) (string, error) {
	c, err := containerByName(ctx, s.db, container, true)
	if err != nil {
		return "", err
	}
	var v string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE container_id = ? AND key = ?`, c.ID, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("option %s of %s: %w", key, c.Name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get option %s of %s: %w", key, c.Name, err)
	}
	return v, nil
}

// SetOption stores one value, replacing any previous value.
func (s *SQLiteStore) SetOption(ctx context.Context, container, key, value string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		c, err := containerByName(ctx, tx, container, false)
		if err != nil {
			return err
		}
		return setOption(ctx, tx, c.ID, key, value)
	})
}

func setOption(ctx context.Context, q queryer, containerID int64, key, value string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO options (container_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (container_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		containerID, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set option %s: %w", key, err)
	}
	return nil
}

// DeleteOption removes one value.
func (s *SQLiteStore) DeleteOption(ctx context.Context, container, key string) error {
	c, err := containerByName(ctx, s.db, container, false)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE container_id = ? AND key = ?`, c.ID, key); err != nil {
		return fmt.Errorf("delete option %s of %s: %w", key, c.Name, err)
	}
	return nil
}

// Options returns the whole dictionary of a container. A container with no
// options yields an empty, non-nil map.
func (s *SQLiteStore) Options(ctx context.Context, container string) (map[string]string, error) {
	c, err := containerByName(ctx, s.db, container, true)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM options WHERE container_id = ?`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list options of %s: %w", c.Name, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// ReplaceOptions swaps the whole dictionary in one transaction.
func (s *SQLiteStore) ReplaceOptions(ctx context.Context, container string, values map[string]string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		c, err := containerByName(ctx, tx, container, false)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE container_id = ?`, c.ID); err != nil {
			return fmt.Errorf("clear options of %s: %w", c.Name, err)
		}
		for k, v := range values {
			if err := setOption(ctx, tx, c.ID, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
