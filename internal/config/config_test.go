package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/autocamera/internal/sequence"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 24000, cfg.TickResolution)
	assert.Equal(t, 24, cfg.DisplayRate)
	assert.Equal(t, "cubic", cfg.Interpolation)
	assert.Equal(t, "input/routes", cfg.RoutesDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 512, cfg.PreviewSize)
	assert.False(t, cfg.Bake)
	assert.False(t, cfg.Preview)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, 1000, cfg.FrameRate().Ratio())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "autocamera.yaml")
	doc := `
displayRate: 30
interpolation: linear
outputDir: renders
bake: true
workers: 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24000, cfg.TickResolution)
	assert.Equal(t, 30, cfg.DisplayRate)
	assert.Equal(t, "renders", cfg.OutputDir)
	assert.True(t, cfg.Bake)
	assert.Equal(t, 3, cfg.Workers)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, sequence.Linear, policy)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("AUTOCAMERA_DISPLAYRATE", "60")
	t.Setenv("AUTOCAMERA_LOGLEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.DisplayRate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/autocamera.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"zero display rate", func(c *Config) { c.DisplayRate = 0 }, false},
		{"bad interpolation", func(c *Config) { c.Interpolation = "bezier" }, false},
		{"no workers", func(c *Config) { c.Workers = 0 }, false},
		{"tiny preview", func(c *Config) { c.Preview, c.PreviewSize = true, 4 }, false},
		{"tiny preview disabled", func(c *Config) { c.PreviewSize = 4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				TickResolution: 24000,
				DisplayRate:    24,
				Interpolation:  "cubic",
				Workers:        2,
				PreviewSize:    256,
			}
			tt.mutate(cfg)

			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
