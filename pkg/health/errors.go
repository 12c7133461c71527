package health

import "errors"

var (
	// ErrCheckFailed is reported for a check that returned an error.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported for a check still running at the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
