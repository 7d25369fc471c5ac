// match.go compares a single term against the attributes of an item.
//
// A term is tested against the item's display name, internal name, category
// and each context tag. There is no field-qualified syntax; every attribute
// is searched for every term.

package query

import "strings"

// Item is the read-only view of an item the matcher needs.
type Item interface {
	DisplayName() string
	Name() string
	Category() string
	ContextTags() []string
}

// MatchTerm reports whether literal matches item in mode. The literal is
// trimmed and compared case-insensitively. An empty literal matches every
// item.
func MatchTerm(literal string, item Item, mode Mode) bool {
	return matchKey(strings.ToLower(strings.TrimSpace(literal)), item, mode)
}

// MatchesExactTerm reports whether literal equals a whole attribute of item.
func MatchesExactTerm(literal string, item Item) bool {
	return MatchTerm(literal, item, Exact)
}

// MatchesPartialTerm reports whether literal appears inside an attribute of
// item.
func MatchesPartialTerm(literal string, item Item) bool {
	return MatchTerm(literal, item, Partial)
}

// matchKey does the comparison for an already folded literal.
func matchKey(key string, item Item, mode Mode) bool {
	if key == "" {
		return true
	}

	cmp := equalsKey
	if mode == Partial {
		cmp = containsKey
	}

	if cmp(item.DisplayName(), key) || cmp(item.Name(), key) || cmp(item.Category(), key) {
		return true
	}
	for _, tag := range item.ContextTags() {
		if cmp(tag, key) {
			return true
		}
	}
	return false
}

// Both modes fold with strings.ToLower so an exact hit is always a partial
// hit.
func equalsKey(attr, key string) bool {
	return strings.ToLower(attr) == key
}

func containsKey(attr, key string) bool {
	return strings.Contains(strings.ToLower(attr), key)
}
