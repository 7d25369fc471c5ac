// items.go implements item placement, lookup and removal.
//
// An item occupies one slot. Adding an item whose internal name is already
// present in the container grows that stack instead of taking a slot, so a
// full container can still accept more of something it already holds.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/stash/internal/validate"
)

// AddItem puts an item into a container.
func (s *SQLiteStore) AddItem(ctx context.Context, container string, it NewItem, opts WriteOptions) (*Item, error) {
	name, err := validate.Item(it.Name, opts.MaxName)
	if err != nil {
		return nil, err
	}
	if err := validate.Label(it.Display, opts.MaxName); err != nil {
		return nil, err
	}
	if err := validate.Label(it.Category, opts.MaxName); err != nil {
		return nil, err
	}
	for _, t := range it.Tags {
		if err := validate.Tag(t); err != nil {
			return nil, err
		}
	}
	stack := it.Stack
	if stack <= 0 {
		stack = 1
	}

	var key string
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		c, err := containerByName(ctx, tx, container, false)
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRowContext(ctx, `SELECT id, key FROM items WHERE container_id = ? AND name = ?`, c.ID, name).Scan(&id, &key)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx, `UPDATE items SET stack = stack + ? WHERE id = ?`, stack, id); err != nil {
				return fmt.Errorf("merge stack %s: %w", name, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			slot, err := freeSlot(ctx, tx, c)
			if err != nil {
				return err
			}
			if key, err = genID(); err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, `INSERT INTO items (key, container_id, name, display, category, stack, slot, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				key, c.ID, name, it.Display, it.Category, stack, slot, time.Now().Unix())
			if err != nil {
				return fmt.Errorf("insert item %s: %w", name, err)
			}
			if id, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert item %s: %w", name, err)
			}
		default:
			return fmt.Errorf("find item %s: %w", name, err)
		}

		for _, t := range it.Tags {
			if err := addTag(ctx, tx, id, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Item(ctx, key)
}

// freeSlot returns the lowest unused slot of c.
func freeSlot(ctx context.Context, q queryer, c *Container) (int, error) {
	rows, err := q.QueryContext(ctx, `SELECT slot FROM items WHERE container_id = ? ORDER BY slot`, c.ID)
	if err != nil {
		return 0, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	next := 0
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return 0, fmt.Errorf("scan slot: %w", err)
		}
		if slot != next {
			break
		}
		next++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if c.Capacity > 0 && next >= c.Capacity {
		return 0, fmt.Errorf("%s: %w", c.Name, ErrContainerFull)
	}
	return next, nil
}

// Item looks an item up by key.
func (s *SQLiteStore) Item(ctx context.Context, key string) (*Item, error) {
	it, err := scanOne(s.db.QueryRowContext(ctx, itemSelect+` WHERE i.key = ?`, key), scanItem)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", key, err)
	}
	return it, nil
}

// Items returns the items of one container ordered by slot. Deleted
// containers can still be listed.
func (s *SQLiteStore) Items(ctx context.Context, container string) ([]Item, error) {
	c, err := containerByName(ctx, s.db, container, true)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, itemSelect+` WHERE i.container_id = ? ORDER BY i.slot`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", container, err)
	}
	return scanAll(rows, scanItem)
}

// AllItems returns the items of every active container.
func (s *SQLiteStore) AllItems(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, itemSelect+` WHERE c.deleted_at IS NULL ORDER BY c.name, i.slot`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return scanAll(rows, scanItem)
}

// RemoveItem deletes an item and its tags.
func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM items WHERE key = ?`, key).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %s: %w", key, ErrNotFound)
			}
			return fmt.Errorf("find item %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE item_id = ?`, id); err != nil {
			return fmt.Errorf("remove tags of %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("remove item %s: %w", key, err)
		}
		return nil
	})
}

// MoveItem moves an item into dst. When dst already holds the same internal
// name the stacks merge and the returned item is the surviving stack.
func (s *SQLiteStore) MoveItem(ctx context.Context, key, dst string) (*Item, error) {
	resultKey := key
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var id, srcContainer int64
		var name string
		var stack int
		err := tx.QueryRowContext(ctx, `SELECT id, container_id, name, stack FROM items WHERE key = ?`, key).
			Scan(&id, &srcContainer, &name, &stack)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("item %s: %w", key, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("find item %s: %w", key, err)
		}

		c, err := containerByName(ctx, tx, dst, false)
		if err != nil {
			return err
		}
		if c.ID == srcContainer {
			return nil
		}

		var targetID int64
		var targetKey string
		err = tx.QueryRowContext(ctx, `SELECT id, key FROM items WHERE container_id = ? AND name = ?`, c.ID, name).
			Scan(&targetID, &targetKey)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx, `UPDATE items SET stack = stack + ? WHERE id = ?`, stack, targetID); err != nil {
				return fmt.Errorf("merge stack %s: %w", name, err)
			}
			// Carry tags over, then drop the source stack.
			if _, err := tx.ExecContext(ctx, `UPDATE OR IGNORE tags SET item_id = ? WHERE item_id = ?`, targetID, id); err != nil {
				return fmt.Errorf("move tags of %s: %w", key, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE item_id = ?`, id); err != nil {
				return fmt.Errorf("remove tags of %s: %w", key, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
				return fmt.Errorf("remove item %s: %w", key, err)
			}
			resultKey = targetKey
		case errors.Is(err, sql.ErrNoRows):
			slot, err := freeSlot(ctx, tx, c)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `UPDATE items SET container_id = ?, slot = ? WHERE id = ?`, c.ID, slot, id); err != nil {
				return fmt.Errorf("move item %s: %w", key, err)
			}
		default:
			return fmt.Errorf("find item %s in %s: %w", name, dst, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Item(ctx, resultKey)
}
