// Package filter reads and changes a container's item filter.
//
// Changing the filter never moves or removes items. Items already stored
// stay put even when the new filter would refuse them; the preview diff
// shows which ones those are.
package filter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/jpl-au/stash/internal/container"
	"github.com/jpl-au/stash/internal/diff"
	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
)

// ErrConflictingFlags is returned when enable and disable are both set.
var ErrConflictingFlags = errors.New("cannot both enable and disable the filter")

// Settings is a container's effective filter configuration.
type Settings struct {
	Container string `json:"container"`
	Enabled   bool   `json:"enabled"`
	Feature   string `json:"feature"`
	Term      string `json:"term"`
	Search    string `json:"search_items"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
}

func settings(c *container.Container) Settings {
	accepted := len(c.Accepted())
	return Settings{
		Container: c.Name(),
		Enabled:   c.Filtering(),
		Feature:   c.Raw.FilterItems().String(),
		Term:      c.Options.FilterTerm(),
		Search:    c.Raw.SearchItems().String(),
		Accepted:  accepted,
		Rejected:  len(c.Items) - accepted,
	}
}

// Get returns the filter settings of a container and writes them to w.
func Get(ctx context.Context, w io.Writer, svc service.Service, name string) (Settings, error) {
	c, err := svc.Load(ctx, name)
	if err != nil {
		return Settings{}, err
	}
	s := settings(c)
	state := "disabled"
	if s.Enabled {
		state = "enabled"
	}
	fmt.Fprintf(w, "container: %s\nfilter:    %s (%s)\nterm:      %s\nsearch:    %s\nitems:     %d accepted, %d rejected\n",
		s.Container, state, s.Feature, orNone(s.Term), s.Search, s.Accepted, s.Rejected)
	return s, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Options configures Set.
type Options struct {
	Term    *string // New term, nil keeps the current one
	Enable  bool
	Disable bool
	DryRun  bool // Preview only
	Colour  bool // Colour the diff
}

// Result contains the outcome of Set.
type Result struct {
	Before Settings
	After  Settings
	Diff   diff.Result
}

// Set changes a container's filter and writes a diff of the items it
// accepts before and after.
func Set(ctx context.Context, w io.Writer, svc service.Service, name string, opts Options) (Result, error) {
	var result Result
	if opts.Enable && opts.Disable {
		return result, ErrConflictingFlags
	}

	c, err := svc.Load(ctx, name)
	if err != nil {
		return result, err
	}

	md := maps.Clone(c.Raw)
	if opts.Term != nil {
		md.SetFilterTerm(*opts.Term)
	}
	switch {
	case opts.Enable:
		md.SetFilterItems(options.Enabled)
	case opts.Disable:
		md.SetFilterItems(options.Disabled)
	}
	next := container.New(c.Info, c.Items, md, svc.Defaults())

	result.Before = settings(c)
	result.After = settings(next)
	result.Diff = diff.Lines(lines(c.Accepted()), lines(next.Accepted()),
		"accepted "+describe(result.Before), "accepted "+describe(result.After))

	if !opts.DryRun {
		if err := svc.SetOptions(ctx, c.Name(), md); err != nil {
			return result, err
		}
	}

	if result.Diff.Changed() {
		fmt.Fprint(w, result.Diff.Format(opts.Colour))
	} else {
		fmt.Fprintf(w, "%s: accepted items unchanged (%d)\n", c.Name(), result.After.Accepted)
	}
	return result, nil
}

func describe(s Settings) string {
	if !s.Enabled {
		return "(no filter)"
	}
	return fmt.Sprintf("(%q)", s.Term)
}

func lines(items []store.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.InternalName
	}
	return out
}
