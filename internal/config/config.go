// Package config loads the analyzer configuration from a YAML file with
// sensible defaults for every knob.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Yash-Popcorn/applovin-market-intelligence/pkg/util"
)

type contextKey string

const configKey contextKey = "config"

// Unbounded disables a per-kind file limit. Zero is a valid limit meaning
// "process none", so the sentinel is negative.
const Unbounded = -1

// Config holds all application configuration
type Config struct {
	// Core settings
	InputDir   string `yaml:"input_dir"`
	ResultsDir string `yaml:"results_dir"`

	// Batch limits; Unbounded (-1) processes everything
	MaxImages int `yaml:"max_images"`
	MaxVideos int `yaml:"max_videos"`

	// Tool binaries; empty means look them up in PATH
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Palette settings
	Palette PaletteConfig `yaml:"palette"`

	// Audio settings
	Audio AudioConfig `yaml:"audio"`

	// LLM insight settings
	Insights InsightsConfig `yaml:"insights"`
}

type PaletteConfig struct {
	Size             int     `yaml:"size"`
	VibrantThreshold float64 `yaml:"vibrant_threshold"`
	StripHeight      int     `yaml:"strip_height"`
}

type AudioConfig struct {
	AnalyzeVolume bool `yaml:"analyze_volume"`
	ExtractTracks bool `yaml:"extract_tracks"`
}

type InsightsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	// APIKey comes from the environment, never the config file
	APIKey string `yaml:"-"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects option combinations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Palette.Size < 1 {
		return fmt.Errorf("palette size must be >= 1, got %d", c.Palette.Size)
	}
	if c.Palette.VibrantThreshold < 0 || c.Palette.VibrantThreshold > 1 {
		return fmt.Errorf("vibrant threshold must be in [0,1], got %f", c.Palette.VibrantThreshold)
	}
	if c.Palette.StripHeight < 1 {
		return fmt.Errorf("strip height must be >= 1, got %d", c.Palette.StripHeight)
	}
	if c.MaxImages < Unbounded {
		return fmt.Errorf("max_images must be >= -1, got %d", c.MaxImages)
	}
	if c.MaxVideos < Unbounded {
		return fmt.Errorf("max_videos must be >= -1, got %d", c.MaxVideos)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		InputDir:   "./data/ads",
		ResultsDir: "./data/results",
		MaxImages:  Unbounded,
		MaxVideos:  Unbounded,
		Palette: PaletteConfig{
			Size:             5,
			VibrantThreshold: 0.5,
			StripHeight:      60,
		},
		Audio: AudioConfig{
			AnalyzeVolume: true,
			ExtractTracks: false,
		},
		Insights: InsightsConfig{
			Enabled: false,
			Model:   "openai/gpt-4o-mini",
			BaseURL: "https://openrouter.ai",
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".adintel", "config.yaml"),
	}

	for _, path := range candidates {
		if util.FileExists(path) {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
