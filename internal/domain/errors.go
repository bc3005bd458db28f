package domain

import "errors"

var (
	// ErrQueryTooShort signals a query below the minimum length.
	ErrQueryTooShort = errors.New("query must be at least 2 characters long")
	// ErrInvalidPage signals malformed pagination parameters.
	ErrInvalidPage = errors.New("invalid pagination parameters")
)
