package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for configuration loading.
var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config: file not found")

	// ErrInvalidYAML is returned when the file cannot be parsed.
	ErrInvalidYAML = errors.New("config: invalid YAML")
)

// ${VAR} or ${VAR:default}
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// Load reads a YAML configuration file into T, expanding ${VAR} and
// ${VAR:default} references against the process environment first.
// Configuration errors are fatal to the caller and are never swallowed.
//
// Example:
//
//	type AppConfig struct {
//	    Addr  string              `yaml:"addr"`
//	    Redis string              `yaml:"redis_url"`
//	    Sentry logger.SentryConfig `yaml:"sentry"`
//	}
//
//	cfg, err := config.Load[AppConfig]("config.yaml")
func Load[T any](path string) (T, error) {
	var cfg T

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(ExpandEnv(data), &cfg); err != nil {
		return cfg, errors.Join(ErrInvalidYAML, err)
	}
	return cfg, nil
}

// MustLoad loads a configuration file or panics.
// Use for startup wiring where a broken config is fatal.
func MustLoad[T any](path string) T {
	cfg, err := Load[T](path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// ExpandEnv replaces ${VAR} and ${VAR:default} references with values from
// the environment. An unset variable without a default expands to the empty
// string.
func ExpandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		groups := envPattern.FindSubmatch(m)
		name, def := string(groups[1]), groups[2]

		if v, ok := os.LookupEnv(name); ok {
			return []byte(v)
		}
		return def
	})
}
