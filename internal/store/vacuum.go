// vacuum.go permanently removes soft-deleted containers.
//
// Deleting a container only marks it; its items, tags and options stay so
// the container can be restored. Vacuum removes all of it for good.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Vacuum purges soft-deleted containers and everything they hold.
//   - olderThan: if non-nil, only containers deleted at least this long ago
//   - prefix: if non-empty, only containers named prefix or nested below it
//
// Returns the number of rows removed across all tables.
func (s *SQLiteStore) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	var total int64

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE IF NOT EXISTS vacuum_ids (id INTEGER PRIMARY KEY)`); err != nil {
			return fmt.Errorf("vacuum: %w", err)
		}
		defer tx.ExecContext(ctx, `DROP TABLE IF EXISTS temp.vacuum_ids`)

		sel := `INSERT INTO vacuum_ids SELECT id FROM containers WHERE deleted_at IS NOT NULL`
		var args []any
		if olderThan != nil {
			sel += ` AND deleted_at <= ?`
			args = append(args, time.Now().Add(-*olderThan).Unix())
		}
		if prefix != "" {
			sel += ` AND (name = ? OR name LIKE ? ESCAPE '\')`
			args = append(args, prefix, escapeLike(prefix)+"/%")
		}
		if _, err := tx.ExecContext(ctx, sel, args...); err != nil {
			return fmt.Errorf("vacuum: select containers: %w", err)
		}

		steps := []struct{ what, stmt string }{
			{"tags", `DELETE FROM tags WHERE item_id IN (SELECT id FROM items WHERE container_id IN (SELECT id FROM vacuum_ids))`},
			{"items", `DELETE FROM items WHERE container_id IN (SELECT id FROM vacuum_ids)`},
			{"options", `DELETE FROM options WHERE container_id IN (SELECT id FROM vacuum_ids)`},
			{"containers", `DELETE FROM containers WHERE id IN (SELECT id FROM vacuum_ids)`},
			{"orphan tags", `DELETE FROM tags WHERE item_id NOT IN (SELECT id FROM items)`},
		}
		for _, st := range steps {
			res, err := tx.ExecContext(ctx, st.stmt)
			if err != nil {
				return fmt.Errorf("vacuum %s: %w", st.what, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				total += n
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
