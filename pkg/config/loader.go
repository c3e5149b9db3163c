// Package config loads typed configuration structs from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from process environment variables, honoring the `env`,
// `envDefault`, and `envSeparator` struct tags. It only parses; range checks
// and cross-field validation stay with the caller.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
