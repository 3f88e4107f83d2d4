// Package config provides YAML-based configuration loading with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from a YAML file with environment variable
// expansion. Values already set on target act as defaults for keys the file
// leaves out.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	return Parse(data, filename, target)
}

// Parse decodes YAML config data after expanding environment references.
// name is used in error messages only.
func Parse[T any](data []byte, name string, target *T) error {
	if err := yaml.Unmarshal([]byte(ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", name, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// ExpandEnv replaces $VAR and ${VAR} with environment values. ${VAR:-word}
// yields word when VAR is unset or empty.
func ExpandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		name, fallback, hasDefault := strings.Cut(key, ":-")
		if v := os.Getenv(name); v != "" || !hasDefault {
			return v
		}
		return fallback
	})
}
