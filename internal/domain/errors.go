package domain

import "errors"

var (
	// ErrInvalidQuery signals malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSearchUnavailable signals that the upstream search index cannot be reached.
	ErrSearchUnavailable = errors.New("search index unavailable")
)
