// Package config loads the runtime configuration of the animcurve command.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SampleConfig controls the sample command.
type SampleConfig struct {
	Step float64 `mapstructure:"step"`
}

// RenderConfig controls the render and watch commands.
type RenderConfig struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	StrokeWidth float64 `mapstructure:"stroke_width"`
	Padding     int     `mapstructure:"padding"`
	Format      string  `mapstructure:"format"`
	Workers     int     `mapstructure:"workers"`
	DrawSamples int     `mapstructure:"draw_samples"`
}

// Config holds all runtime configuration.
// Values are populated from .animcurve.yaml, ANIMCURVE_* env vars, and CLI flags.
type Config struct {
	Sample  SampleConfig `mapstructure:"sample"`
	Render  RenderConfig `mapstructure:"render"`
	Verbose bool         `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("sample.step", 1.0)
	viper.SetDefault("render.width", 800)
	viper.SetDefault("render.height", 400)
	viper.SetDefault("render.stroke_width", 2.0)
	viper.SetDefault("render.padding", 16)
	viper.SetDefault("render.format", "svg")
	viper.SetDefault("render.workers", 4)
	viper.SetDefault("render.draw_samples", 64)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that can't be used.
func (cfg Config) Validate() error {
	switch {
	case !(cfg.Sample.Step > 0):
		return fmt.Errorf("sample.step must be positive, got %v", cfg.Sample.Step)
	case cfg.Render.Width <= 0 || cfg.Render.Height <= 0:
		return fmt.Errorf("render size must be positive, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	case 2*cfg.Render.Padding >= min(cfg.Render.Width, cfg.Render.Height):
		return fmt.Errorf("render.padding %d leaves no room to draw", cfg.Render.Padding)
	case cfg.Render.Format != "svg" && cfg.Render.Format != "png":
		return fmt.Errorf("render.format must be svg or png, got %q", cfg.Render.Format)
	case cfg.Render.Workers < 1:
		return fmt.Errorf("render.workers must be at least 1, got %d", cfg.Render.Workers)
	case cfg.Render.DrawSamples < 2:
		return fmt.Errorf("render.draw_samples must be at least 2, got %d", cfg.Render.DrawSamples)
	}
	return nil
}
