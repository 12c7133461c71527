package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// portFallback is read when SERVER_PORT is unset, as set by most PaaS runtimes.
const portFallback = "PORT"

// Load reads optional env files (overriding the process environment) and
// then parses the environment into a validated Config. Missing env files
// are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Overload(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, name, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := applyPortFallback(&cfg.Server); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyPortFallback(c *ServerConfig) error {
	if _, ok := os.LookupEnv("SERVER_PORT"); ok {
		return nil
	}
	raw := os.Getenv(portFallback)
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, portFallback, raw, err)
	}
	c.Port = port
	return nil
}
