package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Sample.Step", cfg.Sample.Step, 1.0},
		{"Render.Width", cfg.Render.Width, 800},
		{"Render.Height", cfg.Render.Height, 400},
		{"Render.StrokeWidth", cfg.Render.StrokeWidth, 2.0},
		{"Render.Padding", cfg.Render.Padding, 16},
		{"Render.Format", cfg.Render.Format, "svg"},
		{"Render.Workers", cfg.Render.Workers, 4},
		{"Render.DrawSamples", cfg.Render.DrawSamples, 64},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "sample.step",
			envKey: "ANIMCURVE_SAMPLE_STEP",
			envVal: "0.25",
			field:  func(c Config) any { return c.Sample.Step },
			want:   0.25,
		},
		{
			name:   "render.format",
			envKey: "ANIMCURVE_RENDER_FORMAT",
			envVal: "png",
			field:  func(c Config) any { return c.Render.Format },
			want:   "png",
		},
		{
			name:   "render.workers",
			envKey: "ANIMCURVE_RENDER_WORKERS",
			envVal: "9",
			field:  func(c Config) any { return c.Render.Workers },
			want:   9,
		},
		{
			name:   "verbose",
			envKey: "ANIMCURVE_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			SetupEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key string
		val any
	}{
		{"sample.step", 0},
		{"render.width", -1},
		{"render.padding", 200},
		{"render.format", "gif"},
		{"render.workers", 0},
		{"render.draw_samples", 1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			viper.Reset()
			viper.Set(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s = %v", tt.key, tt.val)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, ".animcurve.yaml")
	data := []byte("render:\n  width: 1024\n  format: png\nsample:\n  step: 0.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReadFile(path, ""); err != nil {
		t.Fatalf("ReadFile() returned unexpected error: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Format != "png" || cfg.Sample.Step != 0.5 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Render.Height != 400 {
		t.Errorf("Render.Height = %d, want default 400", cfg.Render.Height)
	}

	viper.Reset()
	if err := ReadFile("", dir); err != nil {
		t.Errorf("ReadFile() with search paths returned %v", err)
	}
	viper.Reset()
	if err := ReadFile(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("ReadFile() accepted a missing explicit path")
	}
}
