package validate

import (
	"fmt"
	"strings"
)

// Query checks search text received from the CLI or MCP. The query compiler
// accepts anything; this only bounds what a caller may submit.
// maxLen of 0 disables the length check.
func Query(text string, maxLen int) error {
	if strings.ContainsRune(text, 0) {
		return fmt.Errorf("%w: null byte in query", ErrInvalidQuery)
	}
	if maxLen > 0 && len(text) > maxLen {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrQueryTooLong, len(text), maxLen)
	}
	return nil
}
