// Package validate checks user input before it reaches the store.
//
// Validation is kept minimal: clearly unusable input (empty names, null
// bytes, oversized values) is rejected and everything else is accepted.
//
// All errors wrap one of the sentinels in errors.go, so callers test them
// with errors.Is:
//
//	if errors.Is(err, validate.ErrInvalidName) {
//	    // handle invalid name
//	}
package validate
