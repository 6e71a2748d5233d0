package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Palette.Size != 5 {
		t.Errorf("default palette size %d, want 5", cfg.Palette.Size)
	}
	if cfg.Palette.VibrantThreshold != 0.5 {
		t.Errorf("default vibrant threshold %f, want 0.5", cfg.Palette.VibrantThreshold)
	}
	if cfg.MaxImages != Unbounded || cfg.MaxVideos != Unbounded {
		t.Errorf("default limits should be unbounded: %d / %d", cfg.MaxImages, cfg.MaxVideos)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
input_dir: /ads
max_images: 3
max_videos: 0
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
palette:
  size: 8
  vibrant_threshold: 0.7
  strip_height: 40
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.InputDir != "/ads" {
		t.Errorf("input dir %q", cfg.InputDir)
	}
	if cfg.MaxImages != 3 || cfg.MaxVideos != 0 {
		t.Errorf("limits %d / %d, want 3 / 0", cfg.MaxImages, cfg.MaxVideos)
	}
	if cfg.Palette.Size != 8 || cfg.Palette.StripHeight != 40 {
		t.Errorf("palette config not applied: %+v", cfg.Palette)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg path %q", cfg.FFmpegPath)
	}
	if cfg.FFprobePath != "" {
		t.Errorf("unset ffprobe path should stay empty, got %q", cfg.FFprobePath)
	}
	// unset fields keep defaults
	if cfg.ResultsDir != "./data/results" {
		t.Errorf("results dir %q", cfg.ResultsDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero palette size", func(c *Config) { c.Palette.Size = 0 }},
		{"negative threshold", func(c *Config) { c.Palette.VibrantThreshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.Palette.VibrantThreshold = 1.5 }},
		{"zero strip height", func(c *Config) { c.Palette.StripHeight = 0 }},
		{"limit below sentinel", func(c *Config) { c.MaxImages = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
