// Package service defines the shared interface for inventory operations.
// Commands and extensions depend on this interface rather than on the
// concrete implementation in package inventory.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/store"
)

// Service defines all inventory operations.
//
//	svc, err := inventory.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	c, err := svc.Load(ctx, "farm/shed")
type Service interface {
	// Close checkpoints the WAL and releases the database.
	Close() error

	// CreateContainer adds an empty container. capacity 0 is unlimited.
	CreateContainer(ctx context.Context, name string, capacity int) (*store.Container, error)

	// Container looks a container up by name or key.
	Container(ctx context.Context, nameOrKey string, includeDeleted bool) (*store.Container, error)

	// ListContainers returns containers named prefix or nested below it.
	ListContainers(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]store.Container, error)

	// DeleteContainer soft-deletes a container (can be restored).
	DeleteContainer(ctx context.Context, name string) error

	// RestoreContainer un-deletes a container.
	RestoreContainer(ctx context.Context, name string) error

	// RenameContainer moves a container to a new name.
	RenameContainer(ctx context.Context, from, to string) error

	// Load returns a container with its items and resolved options.
	Load(ctx context.Context, nameOrKey string) (*container.Container, error)

	// LoadAll returns every active container, ordered by name.
	LoadAll(ctx context.Context, prefix string) ([]*container.Container, error)

	// Add places an item in a container. Items the container's filter
	// rejects fail with inventory.ErrFiltered unless force is set.
	Add(ctx context.Context, container string, it store.NewItem, force bool) (*store.Item, error)

	// Item looks an item up by key.
	Item(ctx context.Context, key string) (*store.Item, error)

	// Items returns the items of one container, ordered by slot.
	Items(ctx context.Context, container string) ([]store.Item, error)

	// AllItems returns the items of every active container.
	AllItems(ctx context.Context) ([]store.Item, error)

	// RemoveItem deletes an item.
	RemoveItem(ctx context.Context, key string) error

	// MoveItem moves an item to another container, respecting the
	// destination's filter unless force is set.
	MoveItem(ctx context.Context, key, dst string, force bool) (*store.Item, error)

	// Tag adds a context tag to an item.
	Tag(ctx context.Context, itemKey, tag string) error

	// Untag removes a context tag from an item.
	Untag(ctx context.Context, itemKey, tag string) error

	// ListTags returns one item's tags, or every tag when itemKey is "".
	ListTags(ctx context.Context, itemKey string) ([]string, error)

	// Options returns a container's own option dictionary.
	Options(ctx context.Context, container string) (options.ModData, error)

	// SetOption assigns one option by short key (see options.Keys).
	SetOption(ctx context.Context, container, key, value string) error

	// SetOptions replaces a container's whole option dictionary.
	SetOptions(ctx context.Context, container string, md options.ModData) error

	// Defaults returns the configured defaults containers inherit from.
	Defaults() options.Static

	// SearchMode returns the configured default match mode.
	SearchMode() query.Mode

	// CheckQuery rejects query text longer than the configured limit.
	CheckQuery(text string) error

	// DB exposes the connection for extensions with their own tables.
	DB() *sql.DB

	// Tx runs fn in a transaction; a nil return commits.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*store.Stats, error)

	// Vacuum purges soft-deleted containers. A nil olderThan purges all.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error
}
