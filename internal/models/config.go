package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// PartConfig describes one evaluation pass
type PartConfig struct {
	Minutes int `yaml:"minutes"`
	Limit   int `yaml:"limit"` // 0 = all blueprints
}

// Config holds the solver settings. Zero values mean defaults.
type Config struct {
	Part1   PartConfig     `yaml:"part1"`
	Part2   PartConfig     `yaml:"part2"`
	Workers int            `yaml:"workers"` // 0 = one goroutine per blueprint
	Prune   *bool          `yaml:"prune,omitempty"`
	Caps    map[string]int `yaml:"caps,omitempty"` // resource name -> production cap override
}

// DefaultConfig returns the quality-sum / quality-product settings
func DefaultConfig() *Config {
	prune := true
	return &Config{
		Part1: PartConfig{Minutes: 24},
		Part2: PartConfig{Minutes: 32, Limit: 3},
		Prune: &prune,
	}
}

// LoadConfig loads a YAML config file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that all settings are in range
func ValidateConfig(c *Config) error {
	if c.Part1.Minutes < 0 {
		return fmt.Errorf("%w: part1.minutes must be >= 0, got %d", ErrInvalidConfig, c.Part1.Minutes)
	}
	if c.Part2.Minutes < 0 {
		return fmt.Errorf("%w: part2.minutes must be >= 0, got %d", ErrInvalidConfig, c.Part2.Minutes)
	}
	if c.Part1.Limit < 0 || c.Part2.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	for name, v := range c.Caps {
		k, err := ParseResourceKind(name)
		if err != nil {
			return fmt.Errorf("%w: caps: %v", ErrInvalidConfig, err)
		}
		if k == Geode {
			return fmt.Errorf("%w: caps.%s: geode robots are never capped", ErrInvalidConfig, name)
		}
		if v < 1 {
			return fmt.Errorf("%w: caps.%s must be >= 1, got %d", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// PruneEnabled reports whether the optimistic-bound prune is on
func (c *Config) PruneEnabled() bool {
	return c.Prune == nil || *c.Prune
}

// CapOverrides converts the caps map into a per-kind vector; kinds without an
// override are zero.
func (c *Config) CapOverrides() Resources {
	var caps Resources
	for name, v := range c.Caps {
		k, err := ParseResourceKind(name)
		if err != nil || k == Geode {
			continue
		}
		caps[k] = v
	}
	return caps
}
