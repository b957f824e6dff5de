// Package config loads the server configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/germanamz/skycast/pkg/nws"
	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	BaseURL   string `yaml:"base_url"`   // NWS API base URL.
	UserAgent string `yaml:"user_agent"` // User-Agent sent upstream.
	Timeout   string `yaml:"timeout"`    // Upstream request timeout as a duration string (e.g. "30s", "500ms").
}

// Default returns the configuration used when no config file is given. The
// server runs fine without one.
func Default() Config {
	return Config{
		BaseURL:   nws.DefaultBaseURL,
		UserAgent: nws.DefaultUserAgent,
		Timeout:   "30s",
	}
}

// Load reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid base_url %q", c.BaseURL)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("config: user_agent is required")
	}

	if _, err := c.RequestTimeout(); err != nil {
		return err
	}

	return nil
}

// RequestTimeout parses the timeout field into a duration.
func (c Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}

	return d, nil
}
