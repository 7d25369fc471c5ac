// Package ls lists containers and the items they hold.
//
// When the name given resolves to a container its items are listed;
// otherwise the name is treated as a prefix and the containers under it are
// listed. Long container listings load each container's items and options
// so slot usage and filter state can be shown.
package ls

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/format"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// SortField orders item listings.
type SortField string

const (
	SortSlot  SortField = ""
	SortName  SortField = "name"
	SortStack SortField = "stack" // largest first
)

// Options configures a list operation.
type Options struct {
	IncludeAll  bool      // Include deleted containers
	DeletedOnly bool      // Only deleted containers
	Tree        bool      // Container hierarchy, never items
	Long        bool      // Long format
	Tag         string    // Only items carrying this context tag
	Sort        SortField // Item order
	Reverse     bool
}

// Result contains the outcome of a list operation. Items is set when a
// single container was listed, Containers otherwise.
type Result struct {
	Container  string
	Items      []store.Item
	Containers []store.Container
}

// Count returns the number of rows listed.
func (r Result) Count() int {
	if r.Container != "" {
		return len(r.Items)
	}
	return len(r.Containers)
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	if r.Container != "" {
		out := make([]store.ItemJSON, len(r.Items))
		for i := range r.Items {
			out[i] = r.Items[i].ToJSON()
		}
		return out
	}
	out := make([]store.ContainerJSON, len(r.Containers))
	for i := range r.Containers {
		out[i] = r.Containers[i].ToJSON()
	}
	return out
}

// Run lists name and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, name string, opts Options) (Result, error) {
	if name != "" && !opts.Tree {
		c, err := svc.Container(ctx, name, opts.IncludeAll || opts.DeletedOnly)
		switch {
		case err == nil:
			return runItems(ctx, w, svc, c, opts)
		case !errors.Is(err, store.ErrNotFound):
			return Result{}, err
		}
	}
	return runContainers(ctx, w, svc, name, opts)
}

func runItems(ctx context.Context, w io.Writer, svc service.Service, c *store.Container, opts Options) (Result, error) {
	result := Result{Container: c.Name}

	items, err := svc.Items(ctx, c.Name)
	if err != nil {
		return result, err
	}
	if opts.Tag != "" {
		items = slices.DeleteFunc(items, func(it store.Item) bool {
			return !slices.Contains(it.Tags, opts.Tag)
		})
	}
	sortItems(items, opts.Sort, opts.Reverse)
	result.Items = items

	if opts.Long {
		return result, format.ItemsLong(w, items)
	}
	return result, format.Items(w, items)
}

// sortItems orders items in place. Ties keep slot order.
func sortItems(items []store.Item, field SortField, reverse bool) {
	cmp := func(a, b store.Item) int { return a.Slot - b.Slot }
	switch field {
	case SortName:
		cmp = func(a, b store.Item) int {
			return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
		}
	case SortStack:
		cmp = func(a, b store.Item) int { return b.Stack - a.Stack }
	}
	slices.SortStableFunc(items, func(a, b store.Item) int {
		if reverse {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}

func runContainers(ctx context.Context, w io.Writer, svc service.Service, prefix string, opts Options) (Result, error) {
	var result Result

	cs, err := svc.ListContainers(ctx, prefix, opts.IncludeAll, opts.DeletedOnly)
	if err != nil {
		return result, err
	}
	result.Containers = cs

	switch {
	case opts.Tree:
		return result, format.Tree(w, cs)
	case opts.Long:
		loaded, err := loadAll(ctx, svc, cs)
		if err != nil {
			return result, err
		}
		return result, format.ContainersLong(w, loaded)
	default:
		return result, format.Containers(w, cs)
	}
}

// loadAll loads active containers through the service and wraps deleted
// ones with their items but no options.
func loadAll(ctx context.Context, svc service.Service, cs []store.Container) ([]*container.Container, error) {
	out := make([]*container.Container, 0, len(cs))
	for _, c := range cs {
		if c.DeletedAt == nil {
			loaded, err := svc.Load(ctx, c.Key)
			if err != nil {
				return nil, err
			}
			out = append(out, loaded)
			continue
		}
		items, err := svc.Items(ctx, c.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, container.New(c, items, nil, svc.Defaults()))
	}
	return out, nil
}
