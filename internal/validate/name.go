// name.go validates container and item names.
//
// Container names are slash-separated and normalised through the path
// package. Item names are opaque identifiers and only trimmed.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/stash/internal/path"
)

// Container validates a container name and returns its normalised form.
// maxLen of 0 disables the length check (used by read operations).
func Container(name string, maxLen int) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: null byte in container name", ErrInvalidName)
	}
	if maxLen > 0 && len(name) > maxLen {
		return "", fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(name), maxLen)
	}
	norm, err := path.Normalise(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return norm, nil
}

// Item validates an internal item name and returns it trimmed.
func Item(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty item name", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: null byte in item name", ErrInvalidName)
	}
	if maxLen > 0 && len(name) > maxLen {
		return "", fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(name), maxLen)
	}
	return name, nil
}

// Label validates optional free text such as a display name or category.
// Empty is allowed.
func Label(s string, maxLen int) error {
	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("%w: null byte", ErrInvalidName)
	}
	if maxLen > 0 && len(s) > maxLen {
		return fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(s), maxLen)
	}
	return nil
}
