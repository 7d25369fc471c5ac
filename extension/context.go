// context.go defines what extensions may reach of stash internals.
//
// Extensions register in init() before any service exists, so the Context
// arrives later through Initializable.Init and EventHandler.HandleEvent.

package extension

import (
	"database/sql"

	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/service"
)

// Context provides extensions controlled access to stash internals.
type Context interface {
	// Service returns the inventory service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions must not modify core tables.
	DB() *sql.DB

	// Config returns the loaded configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{svc: svc, db: db, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }
func (c *extContext) DB() *sql.DB              { return c.db }
func (c *extContext) Config() *config.Config   { return c.cfg }
