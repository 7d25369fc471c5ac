// Package inventory implements service.Service on top of the SQLite store.
// It discovers the database, applies configured limits, enforces container
// filters on placement and notifies extensions after each change.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// ErrFiltered is returned when a container's filter rejects an item.
var ErrFiltered = errors.New("rejected by container filter")

// Service provides inventory operations backed by a Store.
type Service struct {
	store    *store.SQLiteStore
	dbPath   string
	maxName  int
	maxQuery int
	mode     query.Mode
	defaults options.Static
	extCtx   extension.Context
}

var _ service.Service = (*Service)(nil)

// New opens the named database ("" for stash.db), discovering it by walking
// up from the working directory. Returns repo.ErrNotInitialised if none is
// found.
func New(db string) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens the database at dbPath directly.
func Open(dbPath string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	// Older databases gain tables added since they were created.
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	svc := &Service{store: s, dbPath: dbPath}
	svc.apply(cfg)
	return svc, nil
}

// Init initialises a new stash repository. See repo.Init.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

func (s *Service) apply(cfg *config.Config) {
	s.maxName = cfg.MaxName()
	s.maxQuery = cfg.MaxQuery()
	s.mode = cfg.SearchMode()
	s.defaults = cfg.Options()
}

// ReloadConfig re-reads configuration after "stash config" changed it.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.apply(cfg)
	return nil
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").Write(err)
	}
	return s.store.Close()
}

// SetExtensionContext sets the context passed to event handlers. Events are
// not fired until it is set.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// fireEvent notifies extensions. Handler errors are logged, never returned.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for name, err := range extension.Fire(s.extCtx, e) {
		log.Event("event:error", "error").
			Container(e.EventContainer()).
			Detail("ext", name).
			Detail("event", string(e.EventType())).
			Write(err)
	}
}

func (s *Service) writeOpts() store.WriteOptions {
	return store.WriteOptions{MaxName: s.maxName}
}

// Defaults returns the configured option defaults.
func (s *Service) Defaults() options.Static { return s.defaults }

// SearchMode returns the configured default match mode.
func (s *Service) SearchMode() query.Mode { return s.mode }

// CheckQuery rejects query text over the configured limit.
func (s *Service) CheckQuery(text string) error {
	return validate.Query(text, s.maxQuery)
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Tx runs fn in a transaction; a nil return commits.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := s.store.Tx(ctx, fn); err != nil {
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	return nil
}
