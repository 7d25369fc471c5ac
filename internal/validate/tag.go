package validate

import (
	"fmt"
	"strings"
)

// Tag validates a context tag. Tags are matched by search terms, so a tag
// that is empty after trimming could never be found and is rejected.
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}
