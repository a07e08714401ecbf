package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a client configuration file.
type Config struct {
	// Timeout is the per-call timeout, e.g. "30s"; empty means none
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Headers are default headers added to every request
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// MaxRedirects bounds redirect following; zero disables it
	MaxRedirects int `yaml:"maxRedirects,omitempty" json:"maxRedirects,omitempty"`

	// Policy selects the redirect policy: "default" or "aggressive"
	Policy string `yaml:"policy,omitempty" json:"policy,omitempty"`

	// ConfidentialHeaders overrides the headers dropped on cross-host
	// redirects; empty keeps the built-in set
	ConfidentialHeaders []string `yaml:"confidentialHeaders,omitempty" json:"confidentialHeaders,omitempty"`

	// DefaultPort is used when a request URL carries no port
	DefaultPort int `yaml:"defaultPort,omitempty" json:"defaultPort,omitempty"`
}

// Load reads and parses a configuration file, then validates it.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses configuration data. The format is determined by the file
// extension in path: .json is JSON, anything else is treated as YAML.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML config: %w", err)
		}
	}

	return &cfg, nil
}

// GetTimeout parses the configured timeout, or zero when unset.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return parseDurationString(c.Timeout)
}

// parseDurationString parses duration strings like "30s", "5m", "1h",
// plus spelled-out forms like "30 seconds".
func parseDurationString(duration string) (time.Duration, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	if d, err := time.ParseDuration(duration); err == nil {
		return d, nil
	}

	duration = strings.ToLower(duration)
	duration = strings.ReplaceAll(duration, " ", "")

	replacements := map[string]string{
		"seconds": "s",
		"second":  "s",
		"minutes": "m",
		"minute":  "m",
		"hours":   "h",
		"hour":    "h",
	}
	for word, abbrev := range replacements {
		duration = strings.ReplaceAll(duration, word, abbrev)
	}

	return time.ParseDuration(duration)
}
