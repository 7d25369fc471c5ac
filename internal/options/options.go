// Package options holds the per-container settings that decide how a
// container takes part in filtering and search.
//
// Settings are stored as a flat string dictionary (ModData) attached to each
// container, under keys namespaced with "stash/". A container that leaves a
// feature at Default inherits the value of its parent, normally the defaults
// from config; see Child.
package options

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOption is returned for option keys other than those in Keys.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue is returned when a feature value cannot be parsed.
	ErrInvalidValue = errors.New("invalid option value")
)

// FeatureOption is a tri-state switch for a container feature.
type FeatureOption int

const (
	Default FeatureOption = iota
	Disabled
	Enabled
)

func (f FeatureOption) String() string {
	switch f {
	case Disabled:
		return "disabled"
	case Enabled:
		return "enabled"
	default:
		return "default"
	}
}

// ParseFeature parses a feature value case-insensitively. Unrecognised input
// returns Default and false.
func ParseFeature(s string) (FeatureOption, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return Default, true
	case "disabled":
		return Disabled, true
	case "enabled":
		return Enabled, true
	}
	return Default, false
}

// Options is the read side of a container's settings.
type Options interface {
	// FilterItems restricts which items the container accepts.
	FilterItems() FeatureOption
	// FilterTerm is the query an item must match exactly when FilterItems
	// is enabled.
	FilterTerm() string
	// SearchItems controls whether the container takes part in search.
	SearchItems() FeatureOption
	// Label is a free-text display name for the container.
	Label() string
}

// Short keys used by the CLI and MCP tools.
const (
	KeyFilterItems = "filter_items"
	KeyFilterTerm  = "filter_term"
	KeySearchItems = "search_items"
	KeyLabel       = "label"
)

// Keys returns the option keys in display order.
func Keys() []string {
	return []string{KeyFilterItems, KeyFilterTerm, KeySearchItems, KeyLabel}
}

// Get returns the value of an option by short key.
func Get(o Options, key string) (string, error) {
	switch key {
	case KeyFilterItems:
		return o.FilterItems().String(), nil
	case KeyFilterTerm:
		return o.FilterTerm(), nil
	case KeySearchItems:
		return o.SearchItems().String(), nil
	case KeyLabel:
		return o.Label(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOption, key)
}

// All returns every option of o keyed by short key.
func All(o Options) map[string]string {
	return map[string]string{
		KeyFilterItems: o.FilterItems().String(),
		KeyFilterTerm:  o.FilterTerm(),
		KeySearchItems: o.SearchItems().String(),
		KeyLabel:       o.Label(),
	}
}

// Static is a fixed set of options, used for config defaults and for the
// resolved view returned by Child.
type Static struct {
	Filter FeatureOption
	Term   string
	Search FeatureOption
	Name   string
}

var _ Options = Static{}

func (s Static) FilterItems() FeatureOption { return s.Filter }
func (s Static) FilterTerm() string         { return s.Term }
func (s Static) SearchItems() FeatureOption { return s.Search }
func (s Static) Label() string              { return s.Name }

// Child resolves child against parent: a Default feature or an empty string
// on the child takes the parent's value. A nil parent leaves child as is.
func Child(parent, child Options) Static {
	s := Static{
		Filter: child.FilterItems(),
		Term:   child.FilterTerm(),
		Search: child.SearchItems(),
		Name:   child.Label(),
	}
	if parent == nil {
		return s
	}
	if s.Filter == Default {
		s.Filter = parent.FilterItems()
	}
	if s.Term == "" {
		s.Term = parent.FilterTerm()
	}
	if s.Search == Default {
		s.Search = parent.SearchItems()
	}
	if s.Name == "" {
		s.Name = parent.Label()
	}
	return s
}
