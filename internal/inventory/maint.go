// maint.go implements maintenance operations. Vacuum is the only path that
// destroys data permanently.

package inventory

import (
	"context"
	"time"

	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// Vacuum permanently removes soft-deleted containers.
func (s *Service) Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error) {
	if prefix != "" {
		var err error
		if prefix, err = validate.Container(prefix, 0); err != nil {
			return 0, err
		}
	}
	return s.store.Vacuum(ctx, olderThan, prefix)
}

// Stats returns aggregate counts.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
