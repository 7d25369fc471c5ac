// stats.go implements aggregate queries.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats returns aggregate counts over the whole database.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	var oldest sql.NullInt64

	queries := []struct {
		stmt string
		dest any
	}{
		{`SELECT COUNT(*) FROM containers WHERE deleted_at IS NULL`, &st.Containers},
		{`SELECT COUNT(*) FROM containers WHERE deleted_at IS NOT NULL`, &st.DeletedContainers},
		{`SELECT COUNT(*), COALESCE(SUM(i.stack), 0) FROM items i
			JOIN containers c ON c.id = i.container_id WHERE c.deleted_at IS NULL`, nil},
		{`SELECT COUNT(DISTINCT tag) FROM tags`, &st.Tags},
		{`SELECT COUNT(DISTINCT category) FROM items WHERE category != ''`, &st.Categories},
		{`SELECT MIN(deleted_at) FROM containers WHERE deleted_at IS NOT NULL`, &oldest},
	}
	for _, q := range queries {
		row := s.db.QueryRowContext(ctx, q.stmt)
		var err error
		if q.dest == nil {
			err = row.Scan(&st.Items, &st.Units)
		} else {
			err = row.Scan(q.dest)
		}
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	if oldest.Valid {
		st.OldestDeletedAt = oldest.Int64
	}
	return &st, nil
}
