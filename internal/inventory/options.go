// options.go implements per-container option management.

package inventory

import (
	"context"
	"maps"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/validate"
)

// Options returns a container's own option dictionary. Unset features read
// as default; use Load for values resolved against the config defaults.
func (s *Service) Options(ctx context.Context, container string) (options.ModData, error) {
	raw, err := s.store.Options(ctx, container)
	if err != nil {
		return nil, err
	}
	return options.ModData(raw), nil
}

// SetOption assigns one option by short key.
func (s *Service) SetOption(ctx context.Context, container, key, value string) error {
	md, err := s.Options(ctx, container)
	if err != nil {
		return err
	}
	next := maps.Clone(md)
	if err := next.Set(key, value); err != nil {
		return err
	}
	return s.replace(ctx, container, md, next)
}

// SetOptions replaces a container's whole option dictionary.
func (s *Service) SetOptions(ctx context.Context, container string, md options.ModData) error {
	before, err := s.Options(ctx, container)
	if err != nil {
		return err
	}
	return s.replace(ctx, container, before, md)
}

func (s *Service) replace(ctx context.Context, container string, before, after options.ModData) error {
	if err := validate.Query(after.FilterTerm(), s.maxQuery); err != nil {
		return err
	}
	if maps.Equal(before, after) {
		return nil
	}
	c, err := s.store.Container(ctx, container, false)
	if err != nil {
		return err
	}
	if err := s.store.ReplaceOptions(ctx, c.Name, after); err != nil {
		return err
	}
	s.fireEvent(extension.OptionsEvent{Container: c.Name, Before: before, After: after})
	return nil
}
