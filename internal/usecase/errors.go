package usecase

import "errors"

// Sentinel errors shared by the services in this package. The HTTP layer
// maps them onto status codes; domain packages carry their own sentinels
// for pick lifecycle violations.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
