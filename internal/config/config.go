package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ivlev/autocamera/internal/sequence"
	"github.com/ivlev/autocamera/internal/system"
	"github.com/ivlev/autocamera/internal/timing"
)

// EnvPrefix is prepended to every key read from the environment,
// e.g. AUTOCAMERA_DISPLAYRATE.
const EnvPrefix = "AUTOCAMERA"

type Config struct {
	RoutePath      string
	BatchDir       string
	RoutesDir      string
	OutputDir      string
	OutputPath     string
	TickResolution int
	DisplayRate    int
	Interpolation  string
	Bake           bool
	Preview        bool
	PreviewSize    int
	Workers        int
	LogLevel       string
	ShowStats      bool
	BuildVersion   string
}

// Load sets default values, reads the optional YAML config file at path and
// applies AUTOCAMERA_* environment overrides.
func Load(path string) (*Config, error) {
	viper.SetDefault("tickResolution", 24000)
	viper.SetDefault("displayRate", 24)
	viper.SetDefault("interpolation", "cubic")
	viper.SetDefault("routesDir", "input/routes")
	viper.SetDefault("outputDir", "output")
	viper.SetDefault("bake", false)
	viper.SetDefault("preview", false)
	viper.SetDefault("previewSize", 512)
	viper.SetDefault("workers", system.DefaultWorkers())
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("showStats", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		RoutesDir:      viper.GetString("routesDir"),
		OutputDir:      viper.GetString("outputDir"),
		TickResolution: viper.GetInt("tickResolution"),
		DisplayRate:    viper.GetInt("displayRate"),
		Interpolation:  viper.GetString("interpolation"),
		Bake:           viper.GetBool("bake"),
		Preview:        viper.GetBool("preview"),
		PreviewSize:    viper.GetInt("previewSize"),
		Workers:        viper.GetInt("workers"),
		LogLevel:       viper.GetString("logLevel"),
		ShowStats:      viper.GetBool("showStats"),
	}
	return cfg, nil
}

// FrameRate is the default time base for routes that don't set their own.
func (c *Config) FrameRate() timing.FrameRate {
	return timing.FrameRate{TickResolution: c.TickResolution, DisplayRate: c.DisplayRate}
}

// Policy parses the default interpolation mode.
func (c *Config) Policy() (sequence.Interpolation, error) {
	return sequence.ParseInterpolation(c.Interpolation)
}

// Validate checks the values that can't be fixed up later.
func (c *Config) Validate() error {
	if err := c.FrameRate().Validate(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Preview && c.PreviewSize < 16 {
		return fmt.Errorf("preview size must be at least 16, got %d", c.PreviewSize)
	}
	return nil
}
