// Package config provides reading and writing of stash configuration.
// Supports both global (~/.stash/config.yaml) and local (.stash/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/stash/internal/options"
	"github.com/jpl-au/stash/internal/query"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.stash/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .stash/config.yaml
	ScopeLocal
)

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Defaults holds the feature values containers inherit when their own
// option is left at "default".
type Defaults struct {
	FilterItems string `yaml:"filter_items,omitempty"`
	SearchItems string `yaml:"search_items,omitempty"`
}

// Search holds search behaviour options.
type Search struct {
	Mode string `yaml:"mode,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxQuery *int `yaml:"max_query,omitempty"`
	MaxName  *int `yaml:"max_name,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxQuery = 1024
	DefaultMaxName  = 256
)

// Validation bounds for configuration values.
const (
	MinMaxQuery = 1
	MaxMaxQuery = 64 * 1024
	MinMaxName  = 1
	MaxMaxName  = 4096
)

// Config contains configuration for stash.
type Config struct {
	Author   Author   `yaml:"author,omitempty"`
	Defaults Defaults `yaml:"defaults,omitempty"`
	Search   Search   `yaml:"search,omitempty"`
	Limits   Limits   `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxQuery != nil {
		v := *c.Limits.MaxQuery
		if v < MinMaxQuery || v > MaxMaxQuery {
			return fmt.Errorf("%w: max_query must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxQuery, MaxMaxQuery, v)
		}
	}
	if c.Limits.MaxName != nil {
		v := *c.Limits.MaxName
		if v < MinMaxName || v > MaxMaxName {
			return fmt.Errorf("%w: max_name must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxName, MaxMaxName, v)
		}
	}
	for key, v := range map[string]string{
		"defaults.filter_items": c.Defaults.FilterItems,
		"defaults.search_items": c.Defaults.SearchItems,
	} {
		if v == "" {
			continue
		}
		if _, ok := options.ParseFeature(v); !ok {
			return fmt.Errorf("%w: %s must be default, enabled or disabled, got %q", ErrInvalidValue, key, v)
		}
	}
	if c.Search.Mode != "" {
		if _, ok := query.ParseMode(c.Search.Mode); !ok {
			return fmt.Errorf("%w: search.mode must be exact or partial, got %q", ErrInvalidValue, c.Search.Mode)
		}
	}
	return nil
}

// MaxQuery returns the longest accepted query text in bytes (defaults to 1024).
func (c *Config) MaxQuery() int {
	if c.Limits.MaxQuery == nil {
		return DefaultMaxQuery
	}
	return *c.Limits.MaxQuery
}

// MaxName returns the longest accepted container or item name (defaults to 256).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// SearchMode returns the default match mode (defaults to partial).
func (c *Config) SearchMode() query.Mode {
	m, _ := query.ParseMode(c.Search.Mode)
	return m
}

// Options returns the global defaults as the parent of every container's
// own options.
func (c *Config) Options() options.Static {
	filter, _ := options.ParseFeature(c.Defaults.FilterItems)
	search, _ := options.ParseFeature(c.Defaults.SearchItems)
	return options.Static{Filter: filter, Search: search}
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".stash", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.stash/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stash", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
