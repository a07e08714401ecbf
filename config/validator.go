package config

import (
	"fmt"
	"strings"
)

var validPolicies = []string{"", "default", "aggressive"}

// Validate checks a parsed configuration for consistency.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Timeout != "" {
		if _, err := parseDurationString(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", c.Timeout, err)
		}
	}

	if c.MaxRedirects < 0 {
		return fmt.Errorf("maxRedirects cannot be negative")
	}

	if !stringInSlice(c.Policy, validPolicies) {
		return fmt.Errorf("invalid policy '%s', must be one of: default, aggressive", c.Policy)
	}

	for _, name := range c.ConfidentialHeaders {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("confidentialHeaders cannot contain empty names")
		}
	}

	if c.DefaultPort < 0 || c.DefaultPort > 65535 {
		return fmt.Errorf("defaultPort must be between 0 and 65535")
	}

	return nil
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
