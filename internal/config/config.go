// Package config holds runtime configuration for a tracker session.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EventsConfig tunes the conjunction/opposition search.
type EventsConfig struct {
	ThresholdDeg float64 `mapstructure:"threshold_deg"`
	StepDays     float64 `mapstructure:"step_days"`
}

// Config holds all runtime configuration.
// Values are populated from .nexus-tracker.yaml, NEXUS_* env vars, and CLI flags.
type Config struct {
	EphemerisPath string       `mapstructure:"ephemeris_path"`
	Bodies        []string     `mapstructure:"bodies"`
	SampleCount   int          `mapstructure:"sample_count"`
	CacheCapacity int          `mapstructure:"cache_capacity"`
	ExportPath    string       `mapstructure:"export_path"`
	LogLevel      string       `mapstructure:"log_level"`
	Events        EventsConfig `mapstructure:"events"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("ephemeris_path", "")
	viper.SetDefault("bodies", []string{})
	viper.SetDefault("sample_count", 360)
	viper.SetDefault("cache_capacity", 32)
	viper.SetDefault("export_path", "orbits.csv")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("events.threshold_deg", 5.0)
	viper.SetDefault("events.step_days", 0.5)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
