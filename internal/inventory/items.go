// items.go implements item placement, removal and tagging.
//
// Placement goes through the destination container's filter. The filter
// sees the item as it will be after placement: a stack that merges keeps
// its display and category and carries the tags it already had.

package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/store"
)

// Add places an item in a container.
func (s *Service) Add(ctx context.Context, name string, it store.NewItem, force bool) (*store.Item, error) {
	c, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	forced, err := s.admit(c, candidate(c, it), force)
	if err != nil {
		return nil, err
	}

	added, err := s.store.AddItem(ctx, c.Name(), it, s.writeOpts())
	if err != nil {
		return nil, err
	}
	s.fireEvent(extension.ItemAddEvent{
		Container: added.Container,
		Key:       added.Key,
		Name:      added.InternalName,
		Stack:     added.Stack,
		Forced:    forced,
	})
	return added, nil
}

// admit checks item against c's filter. It reports whether force was needed.
func (s *Service) admit(c *container.Container, item *store.Item, force bool) (bool, error) {
	if c.MatchesFilter(item) {
		return false, nil
	}
	if !force {
		return false, fmt.Errorf("%s into %s: %w", item.InternalName, c.Name(), ErrFiltered)
	}
	return true, nil
}

// candidate returns the item as it would look once placed in c. A merge
// keeps the existing stack's display and category and gains the new tags.
func candidate(c *container.Container, it store.NewItem) *store.Item {
	name := strings.TrimSpace(it.Name)
	for _, existing := range c.Items {
		if existing.InternalName == name {
			out := existing
			out.Tags = append(slices.Clone(existing.Tags), it.Tags...)
			return &out
		}
	}
	return &store.Item{
		Container:    c.Name(),
		InternalName: name,
		DisplayText:  it.Display,
		CategoryName: it.Category,
		Tags:         slices.Clone(it.Tags),
	}
}

// Item looks an item up by key.
func (s *Service) Item(ctx context.Context, key string) (*store.Item, error) {
	return s.store.Item(ctx, key)
}

// Items returns the items of one container.
func (s *Service) Items(ctx context.Context, container string) ([]store.Item, error) {
	return s.store.Items(ctx, container)
}

// AllItems returns the items of every active container.
func (s *Service) AllItems(ctx context.Context) ([]store.Item, error) {
	return s.store.AllItems(ctx)
}

// RemoveItem deletes an item.
func (s *Service) RemoveItem(ctx context.Context, key string) error {
	it, err := s.store.Item(ctx, key)
	if err != nil {
		return err
	}
	if err := s.store.RemoveItem(ctx, key); err != nil {
		return err
	}
	s.fireEvent(extension.ItemRemoveEvent{Container: it.Container, Key: it.Key, Name: it.InternalName})
	return nil
}

// MoveItem moves an item into dst, subject to dst's filter.
func (s *Service) MoveItem(ctx context.Context, key, dst string, force bool) (*store.Item, error) {
	it, err := s.store.Item(ctx, key)
	if err != nil {
		return nil, err
	}
	c, err := s.Load(ctx, dst)
	if err != nil {
		return nil, err
	}
	incoming := store.NewItem{
		Name:     it.InternalName,
		Display:  it.DisplayText,
		Category: it.CategoryName,
		Tags:     it.Tags,
	}
	if _, err := s.admit(c, candidate(c, incoming), force); err != nil {
		return nil, err
	}

	moved, err := s.store.MoveItem(ctx, key, c.Name())
	if err != nil {
		return nil, err
	}
	if moved.Container != it.Container {
		s.fireEvent(extension.ItemMoveEvent{
			From:      it.Container,
			Container: moved.Container,
			Key:       moved.Key,
			Merged:    moved.Key != key,
		})
	}
	return moved, nil
}

// Tag adds a context tag to an item.
func (s *Service) Tag(ctx context.Context, itemKey, tag string) error {
	return s.tag(ctx, itemKey, tag, true)
}

// Untag removes a context tag from an item.
func (s *Service) Untag(ctx context.Context, itemKey, tag string) error {
	return s.tag(ctx, itemKey, tag, false)
}

func (s *Service) tag(ctx context.Context, itemKey, tag string, add bool) error {
	it, err := s.store.Item(ctx, itemKey)
	if err != nil {
		return err
	}
	if add {
		err = s.store.Tag(ctx, itemKey, tag)
	} else {
		err = s.store.Untag(ctx, itemKey, tag)
	}
	if err != nil {
		return err
	}
	s.fireEvent(extension.TagEvent{Container: it.Container, Key: it.Key, Tag: strings.TrimSpace(tag), Added: add})
	return nil
}

// ListTags returns one item's tags, or all tags when itemKey is "".
func (s *Service) ListTags(ctx context.Context, itemKey string) ([]string, error) {
	return s.store.ListTags(ctx, itemKey)
}
