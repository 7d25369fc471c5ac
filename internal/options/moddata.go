// moddata.go maps the Options interface onto a container's string
// dictionary.

package options

import (
	"fmt"
	"strings"
)

// Namespaced dictionary keys.
const (
	ModFilterItems = "stash/FilterItems"
	ModFilterTerm  = "stash/FilterTerm"
	ModSearchItems = "stash/SearchItems"
	ModLabel       = "stash/Label"
)

// ModData is the raw option dictionary of one container. Values that are
// missing or unparseable read as Default or empty.
type ModData map[string]string

var _ Options = ModData(nil)

func (m ModData) FilterItems() FeatureOption { return m.feature(ModFilterItems) }
func (m ModData) FilterTerm() string         { return m[ModFilterTerm] }
func (m ModData) SearchItems() FeatureOption { return m.feature(ModSearchItems) }
func (m ModData) Label() string              { return m[ModLabel] }

func (m ModData) feature(key string) FeatureOption {
	f, _ := ParseFeature(m[key])
	return f
}

// SetFilterItems stores f. Default removes the key.
func (m ModData) SetFilterItems(f FeatureOption) { m.setFeature(ModFilterItems, f) }

// SetSearchItems stores f. Default removes the key.
func (m ModData) SetSearchItems(f FeatureOption) { m.setFeature(ModSearchItems, f) }

// SetFilterTerm stores the filter query. A blank term removes the key.
func (m ModData) SetFilterTerm(term string) { m.setString(ModFilterTerm, term) }

// SetLabel stores the label. A blank label removes the key.
func (m ModData) SetLabel(label string) { m.setString(ModLabel, label) }

func (m ModData) setFeature(key string, f FeatureOption) {
	if f == Default {
		delete(m, key)
		return
	}
	m[key] = f.String()
}

func (m ModData) setString(key, value string) {
	if strings.TrimSpace(value) == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

// Set assigns an option by short key.
func (m ModData) Set(key, value string) error {
	switch key {
	case KeyFilterItems, KeySearchItems:
		f, ok := ParseFeature(value)
		if !ok && strings.TrimSpace(value) != "" {
			return fmt.Errorf("%w: %s must be default, enabled or disabled", ErrInvalidValue, key)
		}
		if key == KeyFilterItems {
			m.SetFilterItems(f)
		} else {
			m.SetSearchItems(f)
		}
	case KeyFilterTerm:
		m.SetFilterTerm(value)
	case KeyLabel:
		m.SetLabel(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	return nil
}

// ModKey returns the dictionary key for a short key.
func ModKey(key string) (string, error) {
	switch key {
	case KeyFilterItems:
		return ModFilterItems, nil
	case KeyFilterTerm:
		return ModFilterTerm, nil
	case KeySearchItems:
		return ModSearchItems, nil
	case KeyLabel:
		return ModLabel, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOption, key)
}
