// Package path normalises container names.
//
// Container names are slash-separated so related containers can be grouped
// ("farm/shed/chest"). Every name passes through Normalise before it reaches
// the store, so "farm\shed/", "/farm/shed" and "farm//shed" all refer to the
// same container.
//
// Normalisation rules:
//   - backslashes become forward slashes
//   - no leading or trailing slashes, no empty segments
//   - no "." or ".." segments
//   - surrounding whitespace is trimmed
package path

import (
	"errors"
	stdpath "path"
	"strings"
)

// ErrInvalid indicates the name cannot be normalised.
var ErrInvalid = errors.New("invalid container name")

// Normalise cleans and validates a container name.
func Normalise(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrInvalid
	}

	p = strings.ReplaceAll(p, "\\", "/")
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalid
		}
	}

	p = stdpath.Clean("/" + p)
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return "", ErrInvalid
	}
	return p, nil
}

// Direct reports whether name is prefix itself or a direct child of it.
//
// Examples (prefix="farm"):
//   - "farm" -> true
//   - "farm/shed" -> true
//   - "farm/shed/chest" -> false
//
// An empty prefix matches top-level names only.
func Direct(name, prefix string) bool {
	prefix = strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/")
	if name == prefix {
		return true
	}

	var rest string
	switch {
	case prefix == "":
		rest = name
	case strings.HasPrefix(name, prefix+"/"):
		rest = name[len(prefix)+1:]
	default:
		return false
	}
	return !strings.Contains(rest, "/")
}

// Under reports whether name is prefix or nested anywhere below it.
func Under(name, prefix string) bool {
	prefix = strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/")
	return prefix == "" || name == prefix || strings.HasPrefix(name, prefix+"/")
}
