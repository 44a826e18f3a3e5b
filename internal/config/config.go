// Package config loads game settings from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

// Config is the on-disk game configuration
type Config struct {
	Seed           int64   `yaml:"seed"`
	Terrain        string  `yaml:"terrain"`
	SeasonLength   int     `yaml:"season_length"`
	EventChance    float64 `yaml:"event_chance"`
	RaidBaseChance float64 `yaml:"raid_base_chance"`
	LogCapacity    int     `yaml:"log_capacity"`
}

// Default returns the standard settings
func Default() Config {
	d := game.DefaultOptions()
	return Config{
		Seed:           d.Seed,
		Terrain:        string(d.Terrain),
		SeasonLength:   d.SeasonLength,
		EventChance:    d.EventChance,
		RaidBaseChance: d.BaseRaidChance,
		LogCapacity:    d.LogCapacity,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and identifiers
func (c Config) Validate() error {
	if models.GetTerrain(models.TerrainID(c.Terrain)) == nil {
		return fmt.Errorf("unknown terrain %q", c.Terrain)
	}
	if c.SeasonLength < 1 {
		return fmt.Errorf("season_length must be at least 1, got %d", c.SeasonLength)
	}
	if c.EventChance < 0 || c.EventChance > 1 {
		return fmt.Errorf("event_chance must be within [0,1], got %v", c.EventChance)
	}
	if c.RaidBaseChance < 0 || c.RaidBaseChance > 1 {
		return fmt.Errorf("raid_base_chance must be within [0,1], got %v", c.RaidBaseChance)
	}
	if c.LogCapacity < 1 {
		return fmt.Errorf("log_capacity must be at least 1, got %d", c.LogCapacity)
	}
	return nil
}

// Options converts the configuration into engine options
func (c Config) Options() game.Options {
	return game.Options{
		Seed:           c.Seed,
		Terrain:        models.TerrainID(c.Terrain),
		SeasonLength:   c.SeasonLength,
		EventChance:    c.EventChance,
		BaseRaidChance: c.RaidBaseChance,
		LogCapacity:    c.LogCapacity,
	}
}

// Marshal renders the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
