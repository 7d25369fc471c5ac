// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP address settings by dotted string keys
// ("limits.max_query"); config.go owns the YAML structure. Optional numeric
// fields are pointers so "not set" and "set to zero" stay distinct.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"defaults.filter_items", "defaults.search_items",
		"search.mode",
		"limits.max_query", "limits.max_name",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "defaults.filter_items":
		return c.Options().Filter.String(), nil
	case "defaults.search_items":
		return c.Options().Search.String(), nil
	case "search.mode":
		return c.SearchMode().String(), nil
	case "limits.max_query":
		return strconv.Itoa(c.MaxQuery()), nil
	case "limits.max_name":
		return strconv.Itoa(c.MaxName()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "defaults.filter_items", "defaults.search_items":
		f, ok := options.ParseFeature(value)
		if !ok {
			return fmt.Errorf("%w: %s must be default, enabled or disabled", ErrInvalidValue, key)
		}
		v := ""
		if f != options.Default {
			v = f.String()
		}
		if key == "defaults.filter_items" {
			c.Defaults.FilterItems = v
		} else {
			c.Defaults.SearchItems = v
		}
	case "search.mode":
		m, ok := query.ParseMode(value)
		if !ok {
			return fmt.Errorf("%w: search.mode must be exact or partial", ErrInvalidValue)
		}
		c.Search.Mode = m.String()
	case "limits.max_query":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < MinMaxQuery || n > MaxMaxQuery {
			return fmt.Errorf("%w: limits.max_query must be between %d and %d", ErrInvalidValue, MinMaxQuery, MaxMaxQuery)
		}
		c.Limits.MaxQuery = &n
	case "limits.max_name":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < MinMaxName || n > MaxMaxName {
			return fmt.Errorf("%w: limits.max_name must be between %d and %d", ErrInvalidValue, MinMaxName, MaxMaxName)
		}
		c.Limits.MaxName = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "defaults.filter_items":
		return c.Defaults.FilterItems != ""
	case "defaults.search_items":
		return c.Defaults.SearchItems != ""
	case "search.mode":
		return c.Search.Mode != ""
	case "limits.max_query":
		return c.Limits.MaxQuery != nil
	case "limits.max_name":
		return c.Limits.MaxName != nil
	default:
		return false
	}
}
