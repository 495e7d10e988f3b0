package health

import "errors"

var (
	// ErrCheckFailed marks an unhealthy result with no more specific cause.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that outlived the aggregator timeout.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound is returned when checking a name never registered.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
