package config

import "errors"

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrEnvFile       = errors.New("config: read env file")
)
