package rules

import "errors"

var (
	// ErrUnknownSetting is returned when a toggle name does not exist.
	ErrUnknownSetting = errors.New("rules: unknown setting")
	// ErrInvalidProfile is returned when a profile document cannot be parsed.
	ErrInvalidProfile = errors.New("rules: invalid profile")
)
