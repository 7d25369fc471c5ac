// Package rm removes containers and items.
//
// Containers are soft-deleted: their items stay in place and come back with
// Restore until vacuum purges them. Items are removed immediately.
package rm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// ErrWrongContainer is returned when an item key belongs elsewhere.
var ErrWrongContainer = errors.New("item is not in that container")

// Options configures a remove operation.
type Options struct {
	Item      string // Remove this item key instead of the container
	Recursive bool   // Also delete containers nested below the name
}

// Result contains the outcome of a remove operation.
type Result struct {
	Container string   `json:"container"`
	Item      string   `json:"item,omitempty"`
	Deleted   []string `json:"deleted,omitempty"`
}

// Run deletes a container, its nested containers, or a single item.
func Run(ctx context.Context, w io.Writer, svc service.Service, name string, opts Options) (Result, error) {
	result := Result{Container: name}

	if opts.Item != "" {
		if opts.Recursive {
			return result, fmt.Errorf("an item key and --recursive cannot be used together")
		}
		return removeItem(ctx, w, svc, name, opts.Item)
	}

	if !opts.Recursive {
		c, err := svc.Container(ctx, name, false)
		if err != nil {
			return result, err
		}
		if err := svc.DeleteContainer(ctx, c.Name); err != nil {
			return result, err
		}
		result.Container = c.Name
		result.Deleted = []string{c.Name}
		fmt.Fprintf(w, "Deleted %s\n", c.Name)
		return result, nil
	}

	cs, err := svc.ListContainers(ctx, name, false, false)
	if err != nil {
		return result, err
	}
	for _, c := range cs {
		if err := svc.DeleteContainer(ctx, c.Name); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, c.Name)
		fmt.Fprintf(w, "Deleted %s\n", c.Name)
	}
	if len(result.Deleted) == 0 {
		fmt.Fprintf(w, "No containers found under %s\n", name)
	}
	return result, nil
}

func removeItem(ctx context.Context, w io.Writer, svc service.Service, name, key string) (Result, error) {
	result := Result{Container: name, Item: key}

	c, err := svc.Container(ctx, name, false)
	if err != nil {
		return result, err
	}
	it, err := svc.Item(ctx, key)
	if err != nil {
		return result, err
	}
	if it.Container != c.Name {
		return result, fmt.Errorf("%s: %w (it is in %s)", key, ErrWrongContainer, it.Container)
	}
	if err := svc.RemoveItem(ctx, key); err != nil {
		return result, err
	}
	result.Container = c.Name
	result.Deleted = []string{key}
	fmt.Fprintf(w, "Removed %s x%d from %s\n", it.DisplayName(), it.Stack, c.Name)
	return result, nil
}

// Restore un-deletes a container.
func Restore(ctx context.Context, w io.Writer, svc service.Service, name string) (*store.Container, error) {
	if err := svc.RestoreContainer(ctx, name); err != nil {
		return nil, err
	}
	c, err := svc.Container(ctx, name, false)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Restored %s\n", c.Name)
	return c, nil
}
