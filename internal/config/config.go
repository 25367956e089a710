// Package config loads the dashboard's settings from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL     = "https://api.github.com/"
	DefaultRepository = "facebook/react"
	DefaultLocale     = "en"
	DefaultListenAddr = ":8080"
)

// Environment variable names read by Load.
const (
	EnvAPIURL      = "GITHUB_DASHBOARD_API_URL"
	EnvDefaultRepo = "GITHUB_DASHBOARD_DEFAULT_REPO"
	EnvLocale      = "GITHUB_DASHBOARD_LOCALE"
	EnvTimeout     = "GITHUB_DASHBOARD_TIMEOUT"
	EnvListenAddr  = "GITHUB_DASHBOARD_ADDR"
)

// Config holds every setting the commands need.
type Config struct {
	// APIURL is the base URL of the GitHub REST API.
	APIURL string
	// DefaultRepository is the owner/name shown when the search term is empty.
	DefaultRepository string
	// Locale selects the message catalog.
	Locale string
	// Timeout bounds each upstream request. Zero means no timeout.
	Timeout time.Duration
	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		DefaultRepository: DefaultRepository,
		Locale:            DefaultLocale,
		ListenAddr:        DefaultListenAddr,
	}
}

// Load reads an optional .env file in the working directory, then applies
// GITHUB_DASHBOARD_* environment variables on top of the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvDefaultRepo); v != "" {
		cfg.DefaultRepository = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	if _, _, err := ParseRepository(c.DefaultRepository); err != nil {
		return fmt.Errorf("invalid default repository: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// ParseRepository takes a string in the format owner/name and returns the
// owner and name as two separate strings.
func ParseRepository(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository should be in format owner/name, got %q", repo)
	}
	return parts[0], parts[1], nil
}
