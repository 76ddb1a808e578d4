package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable a habbohub command
// reads, so struct tags name only the variable suffix.
const EnvPrefix = "HABBOHUB_"

// ParseEnv loads configuration from HABBOHUB_-prefixed environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
