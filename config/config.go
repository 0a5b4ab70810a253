// Package config loads the backend collaborator settings from the process
// environment. The core never reads these itself: Load is called once at
// startup and the resulting values are injected into a backend constructor.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds environment-sourced backend settings. All variables carry
// the TOOLMESH_ prefix (e.g. TOOLMESH_API_KEY).
type Config struct {
	// BaseURL overrides the backend endpoint (optional for public APIs,
	// required for Azure-style deployments).
	BaseURL string `env:"BASE_URL"`

	// APIKey is the backend credential.
	APIKey string `env:"API_KEY"`

	// APIVersion selects the backend API revision.
	APIVersion string `env:"API_VERSION" envDefault:"2023-05-15"`

	// Model is the default model name used when a backend is constructed
	// from this config.
	Model string `env:"MODEL" envDefault:"gpt-4o"`
}

// Load reads the configuration from TOOLMESH_-prefixed environment variables.
func Load() (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Prefix: "TOOLMESH_"}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Validate reports whether the config is usable for an authenticated backend.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("config: TOOLMESH_API_KEY must be set")
	}
	return nil
}
