package validate

import "errors"

var (
	ErrInvalidName  = errors.New("invalid name")
	ErrNameTooLong  = errors.New("name too long")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrQueryTooLong = errors.New("query too long")
	ErrInvalidQuery = errors.New("invalid query")
)
