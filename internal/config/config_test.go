package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.EphemerisPath != "" {
		t.Errorf("EphemerisPath = %q, want empty (analytic fallback)", cfg.EphemerisPath)
	}
	if cfg.SampleCount != 360 {
		t.Errorf("SampleCount = %d, want 360", cfg.SampleCount)
	}
	if cfg.CacheCapacity != 32 {
		t.Errorf("CacheCapacity = %d, want 32", cfg.CacheCapacity)
	}
	if cfg.ExportPath != "orbits.csv" {
		t.Errorf("ExportPath = %q", cfg.ExportPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Events.ThresholdDeg != 5.0 {
		t.Errorf("Events.ThresholdDeg = %v, want 5", cfg.Events.ThresholdDeg)
	}
	if cfg.Events.StepDays != 0.5 {
		t.Errorf("Events.StepDays = %v, want 0.5", cfg.Events.StepDays)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "ephemeris_path",
			envKey: "NEXUS_EPHEMERIS_PATH",
			envVal: "/data/de440s.bin",
			field:  func(c Config) any { return c.EphemerisPath },
			want:   "/data/de440s.bin",
		},
		{
			name:   "sample_count",
			envKey: "NEXUS_SAMPLE_COUNT",
			envVal: "720",
			field:  func(c Config) any { return c.SampleCount },
			want:   720,
		},
		{
			name:   "cache_capacity",
			envKey: "NEXUS_CACHE_CAPACITY",
			envVal: "4",
			field:  func(c Config) any { return c.CacheCapacity },
			want:   4,
		},
		{
			name:   "log_level",
			envKey: "NEXUS_LOG_LEVEL",
			envVal: "debug",
			field:  func(c Config) any { return c.LogLevel },
			want:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix("NEXUS")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}
