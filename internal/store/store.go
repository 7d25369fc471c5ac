// Package store defines container and item persistence types and the Store
// interface. Consumers depend on the interface; SQLiteStore is the only
// implementation.
package store

import (
	"encoding/json"
	"time"

	"github.com/jpl-au/stash/internal/query"
)

// Container is a named, optionally bounded set of item slots.
type Container struct {
	ID        int64  // Database primary key (internal)
	Key       string // Unique 8-char identifier
	Name      string // Normalised name (e.g., "farm/shed")
	Capacity  int    // Number of slots, 0 for unlimited
	CreatedAt int64  // Unix timestamp of creation
	DeletedAt *int64 // Unix timestamp of deletion, nil if not deleted
}

// Item is one stack occupying a slot of a container.
type Item struct {
	ID           int64    // Database primary key (internal)
	Key          string   // Unique 8-char identifier
	Container    string   // Name of the owning container
	InternalName string   // Stable identifier, e.g. "iridium_ore"
	DisplayText  string   // Name shown to players, e.g. "Iridium Ore"
	CategoryName string   // Category, e.g. "Resource"
	Tags         []string // Context tags, sorted
	Stack        int      // Number of units in the stack
	Slot         int      // Zero-based slot index within the container
	CreatedAt    int64    // Unix timestamp of creation
}

var _ query.Item = (*Item)(nil)

// DisplayName returns the display text, falling back to the internal name
// for items imported without one.
func (i *Item) DisplayName() string {
	if i.DisplayText == "" {
		return i.InternalName
	}
	return i.DisplayText
}

func (i *Item) Name() string          { return i.InternalName }
func (i *Item) Category() string      { return i.CategoryName }
func (i *Item) ContextTags() []string { return i.Tags }

// NewItem describes an item to add. Stack defaults to 1.
type NewItem struct {
	Name     string
	Display  string
	Category string
	Tags     []string
	Stack    int
}

// ContainerJSON is the API representation of a Container.
type ContainerJSON struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity,omitempty"`
	CreatedAt string `json:"created_at"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// ToJSON converts a Container to its API representation.
func (c *Container) ToJSON() ContainerJSON {
	return ContainerJSON{
		Key:       c.Key,
		Name:      c.Name,
		Capacity:  c.Capacity,
		CreatedAt: time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   c.DeletedAt != nil,
	}
}

// ItemJSON is the API representation of an Item.
type ItemJSON struct {
	Key       string   `json:"key"`
	Container string   `json:"container"`
	Name      string   `json:"name"`
	Display   string   `json:"display"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Stack     int      `json:"stack"`
	Slot      int      `json:"slot"`
}

// ToJSON converts an Item to its API representation.
func (i *Item) ToJSON() ItemJSON {
	return ItemJSON{
		Key:       i.Key,
		Container: i.Container,
		Name:      i.InternalName,
		Display:   i.DisplayName(),
		Category:  i.CategoryName,
		Tags:      i.Tags,
		Stack:     i.Stack,
		Slot:      i.Slot,
	}
}

// MarshalJSON encodes a value with indentation for CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions carries limits for operations that store names.
type WriteOptions struct {
	MaxName int // 0 means no limit
}

// Stats summarises the database.
type Stats struct {
	Containers        int64 // Active containers
	DeletedContainers int64 // Soft-deleted containers pending vacuum
	Items             int64 // Item stacks in active containers
	Units             int64 // Sum of stack sizes in active containers
	Tags              int64 // Distinct context tags
	Categories        int64 // Distinct categories
	OldestDeletedAt   int64 // Earliest soft-delete (0 if none)
}
