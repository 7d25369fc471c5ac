// interfaces.go defines the storage abstraction for containers and items.
//
// The interfaces are split by capability so consumers depend only on what
// they use. Containers are soft-deleted and can be restored until Vacuum
// purges them together with their items, tags and options. Items are removed
// immediately.

package store

import (
	"context"
	"database/sql"
	"time"
)

// ContainerStore manages containers.
type ContainerStore interface {
	// CreateContainer adds an empty container. capacity 0 means unlimited.
	// Returns ErrAlreadyExists if the name is taken, including by a deleted
	// container.
	CreateContainer(ctx context.Context, name string, capacity int, opts WriteOptions) (*Container, error)

	// Container looks a container up by name or key.
	Container(ctx context.Context, nameOrKey string, includeDeleted bool) (*Container, error)

	// ListContainers returns containers named prefix or nested below it,
	// ordered by name.
	ListContainers(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]Container, error)

	// DeleteContainer soft-deletes a container.
	DeleteContainer(ctx context.Context, name string) error

	// RestoreContainer undoes DeleteContainer.
	RestoreContainer(ctx context.Context, name string) error

	// RenameContainer changes a container's name, keeping its items.
	RenameContainer(ctx context.Context, from, to string, opts WriteOptions) error
}

// ItemStore manages the items held by containers.
type ItemStore interface {
	// AddItem puts an item into a container. An item with the same internal
	// name already present absorbs the new stack; otherwise the lowest free
	// slot is used. Returns ErrContainerFull when no slot is free.
	AddItem(ctx context.Context, container string, it NewItem, opts WriteOptions) (*Item, error)

	// Item looks an item up by key.
	Item(ctx context.Context, key string) (*Item, error)

	// Items returns the items of one container ordered by slot.
	Items(ctx context.Context, container string) ([]Item, error)

	// AllItems returns the items of every active container ordered by
	// container name then slot.
	AllItems(ctx context.Context) ([]Item, error)

	// RemoveItem deletes an item and its tags.
	RemoveItem(ctx context.Context, key string) error

	// MoveItem moves an item to another container, merging it into a stack
	// of the same internal name when one exists.
	MoveItem(ctx context.Context, key, dst string) (*Item, error)
}

// Tagger manages item context tags.
type Tagger interface {
	// Tag adds a context tag to an item. Adding an existing tag is a no-op.
	Tag(ctx context.Context, itemKey, tag string) error

	// Untag removes a context tag. Returns ErrNotFound if it was not set.
	Untag(ctx context.Context, itemKey, tag string) error

	// ListTags returns the tags of one item, or every tag in use when
	// itemKey is empty.
	ListTags(ctx context.Context, itemKey string) ([]string, error)
}

// OptionStore manages the per-container option dictionary.
type OptionStore interface {
	// Option returns one value. Returns ErrNotFound if unset.
	Option(ctx context.Context, container, key string) (string, error)

	// SetOption stores one value.
	SetOption(ctx context.Context, container, key, value string) error

	// DeleteOption removes one value. Missing values are not an error.
	DeleteOption(ctx context.Context, container, key string) error

	// Options returns the whole dictionary of a container.
	Options(ctx context.Context, container string) (map[string]string, error)

	// ReplaceOptions swaps the whole dictionary atomically.
	ReplaceOptions(ctx context.Context, container string, values map[string]string) error
}

// Maintainer covers lifecycle and housekeeping.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the connection for extensions that keep their own tables.
	DB() *sql.DB

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*Stats, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum permanently removes soft-deleted containers and everything
	// they hold.
	Vacuum(ctx context.Context, olderThan *time.Duration, prefix string) (int64, error)
}

// Store is the full persistence interface.
type Store interface {
	ContainerStore
	ItemStore
	Tagger
	OptionStore
	Maintainer
}
