package cache

import "errors"

// Sentinel errors for opening a shared cache. A plain miss is never an
// error; Get reports it through its bool result.
var (
	// ErrInvalidURL is returned when a Redis URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid cache url")

	// ErrUnavailable is returned when the cache backend cannot be reached.
	ErrUnavailable = errors.New("cache unavailable")
)
