// Package config loads process configuration from the environment.
//
// Three settings drive the server: the secret API token, the optional
// workspace subdomain, and the two-valued data-center region. An absent
// or placeholder token switches the whole transport into demo mode.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// APIKeyPlaceholder is the documented placeholder value shipped in the
// example configuration. Demo-mode detection compares against it exactly
// — a real token that merely resembles it is used as-is.
const APIKeyPlaceholder = "your-api-key-here"

// Data-center regions Vitally hosts workspaces in.
const (
	DataCenterUS = "US"
	DataCenterEU = "EU"
)

// Config holds the process settings.
type Config struct {
	APIKey     string `envconfig:"VITALLY_API_KEY"`
	Subdomain  string `envconfig:"VITALLY_SUBDOMAIN"`
	DataCenter string `envconfig:"VITALLY_DATA_CENTER" default:"US"`
}

// Load reads configuration from a .env file (best effort) and the
// process environment, and validates the data-center setting.
func Load() (Config, error) {
	// A missing .env is fine — real deployments set env vars directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.DataCenter {
	case "":
		// envconfig only applies the default when the variable is unset;
		// an explicitly empty value means the same thing here.
		cfg.DataCenter = DataCenterUS
	case DataCenterUS, DataCenterEU:
	default:
		return Config{}, fmt.Errorf("invalid VITALLY_DATA_CENTER %q: must be %s or %s",
			cfg.DataCenter, DataCenterUS, DataCenterEU)
	}
	return cfg, nil
}

// DemoMode reports whether the server should serve canned data instead
// of calling the live API.
func (c Config) DemoMode() bool {
	return c.APIKey == "" || c.APIKey == APIKeyPlaceholder
}

// BaseURL returns the REST endpoint for the configured data center. EU
// workspaces share a single endpoint; US workspaces may be addressed by
// subdomain.
func (c Config) BaseURL() string {
	if c.DataCenter == DataCenterEU {
		return "https://rest.vitally-eu.io/resources/v1"
	}
	if c.Subdomain != "" {
		return fmt.Sprintf("https://%s.rest.vitally.io/resources/v1", c.Subdomain)
	}
	return "https://rest.vitally.io/resources/v1"
}
