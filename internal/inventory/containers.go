// containers.go implements container lifecycle and loading.

package inventory

import (
	"context"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/store"
)

// CreateContainer adds an empty container.
func (s *Service) CreateContainer(ctx context.Context, name string, capacity int) (*store.Container, error) {
	c, err := s.store.CreateContainer(ctx, name, capacity, s.writeOpts())
	if err != nil {
		return nil, err
	}
	s.fireEvent(extension.ContainerEvent{Type: extension.EventContainerCreate, Container: c.Name})
	return c, nil
}

// Container looks a container up by name or key.
func (s *Service) Container(ctx context.Context, nameOrKey string, includeDeleted bool) (*store.Container, error) {
	return s.store.Container(ctx, nameOrKey, includeDeleted)
}

// ListContainers returns containers named prefix or nested below it.
func (s *Service) ListContainers(ctx context.Context, prefix string, includeDeleted, deletedOnly bool) ([]store.Container, error) {
	return s.store.ListContainers(ctx, prefix, includeDeleted, deletedOnly)
}

// DeleteContainer soft-deletes a container.
func (s *Service) DeleteContainer(ctx context.Context, name string) error {
	c, err := s.store.Container(ctx, name, false)
	if err != nil {
		return err
	}
	if err := s.store.DeleteContainer(ctx, c.Name); err != nil {
		return err
	}
	s.fireEvent(extension.ContainerEvent{Type: extension.EventContainerDelete, Container: c.Name})
	return nil
}

// RestoreContainer un-deletes a container.
func (s *Service) RestoreContainer(ctx context.Context, name string) error {
	if err := s.store.RestoreContainer(ctx, name); err != nil {
		return err
	}
	c, err := s.store.Container(ctx, name, false)
	if err != nil {
		return err
	}
	s.fireEvent(extension.ContainerEvent{Type: extension.EventContainerRestore, Container: c.Name})
	return nil
}

// RenameContainer moves a container to a new name.
func (s *Service) RenameContainer(ctx context.Context, from, to string) error {
	if err := s.store.RenameContainer(ctx, from, to, s.writeOpts()); err != nil {
		return err
	}
	c, err := s.store.Container(ctx, to, false)
	if err != nil {
		return err
	}
	s.fireEvent(extension.ContainerEvent{Type: extension.EventContainerRename, Container: c.Name, From: from})
	return nil
}

// Load returns an active container with its items and resolved options.
func (s *Service) Load(ctx context.Context, nameOrKey string) (*container.Container, error) {
	info, err := s.store.Container(ctx, nameOrKey, false)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items(ctx, info.Name)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Options(ctx, info.Name)
	if err != nil {
		return nil, err
	}
	return container.New(*info, items, options.ModData(raw), s.defaults), nil
}

// LoadAll returns every active container named prefix or nested below it.
func (s *Service) LoadAll(ctx context.Context, prefix string) ([]*container.Container, error) {
	infos, err := s.store.ListContainers(ctx, prefix, false, false)
	if err != nil {
		return nil, err
	}
	all, err := s.store.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	byContainer := make(map[string][]store.Item)
	for _, it := range all {
		byContainer[it.Container] = append(byContainer[it.Container], it)
	}

	out := make([]*container.Container, 0, len(infos))
	for _, info := range infos {
		raw, err := s.store.Options(ctx, info.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, container.New(info, byContainer[info.Name], options.ModData(raw), s.defaults))
	}
	return out, nil
}
