// Package container bundles a stored container with its items and resolved
// options, and answers the two questions search and placement ask of it:
// does an item pass the container's filter, and does the container take
// part in search.
package container

import (
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
	"github.com/jpl-au/stash/internal/store"
)

// ItemFilter decides whether an item may be placed somewhere.
type ItemFilter interface {
	MatchesFilter(item query.Item) bool
}

// Container is a loaded container. Items are ordered by slot.
type Container struct {
	Info  store.Container
	Items []store.Item

	// Raw is the container's own option dictionary; Options is Raw
	// resolved against the configured defaults.
	Raw     options.ModData
	Options options.Static

	filter *query.Query
}

var _ ItemFilter = (*Container)(nil)

// New builds a Container. parent supplies values Raw leaves at default and
// may be nil.
func New(info store.Container, items []store.Item, raw options.ModData, parent options.Options) *Container {
	if raw == nil {
		raw = options.ModData{}
	}
	return &Container{
		Info:    info,
		Items:   items,
		Raw:     raw,
		Options: options.Child(parent, raw),
	}
}

// Name returns the container's name.
func (c *Container) Name() string {
	return c.Info.Name
}

// Label returns the display label, falling back to the name.
func (c *Container) Label() string {
	if l := c.Options.Label(); l != "" {
		return l
	}
	return c.Info.Name
}

// ForEachItem calls fn for each item from the last slot to the first,
// stopping early when fn returns false. It reports whether the walk ran to
// completion.
func (c *Container) ForEachItem(fn func(store.Item) bool) bool {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if !fn(c.Items[i]) {
			return false
		}
	}
	return true
}

// Filtering reports whether the container restricts the items it accepts.
func (c *Container) Filtering() bool {
	return c.Options.FilterItems() == options.Enabled
}

// MatchesFilter reports whether item may be placed in the container. With
// FilterItems not enabled every item passes; otherwise the item must match
// the filter term exactly. An empty term accepts everything.
func (c *Container) MatchesFilter(item query.Item) bool {
	if !c.Filtering() {
		return true
	}
	if c.filter == nil {
		c.filter = query.New(c.Options.FilterTerm())
	}
	return c.filter.IsExactMatch(item)
}

// Searchable is false only when SearchItems is disabled.
func (c *Container) Searchable() bool {
	return c.Options.SearchItems() != options.Disabled
}

// Accepted returns the items that pass the container's filter, in slot
// order.
func (c *Container) Accepted() []store.Item {
	var out []store.Item
	for _, it := range c.Items {
		if c.MatchesFilter(&it) {
			out = append(out, it)
		}
	}
	return out
}
