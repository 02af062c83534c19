// Package config loads the optional themegen.yaml settings file that
// supplies per-folder defaults for catalog generation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the target folder.
const FileName = "themegen.yaml"

// Config captures generation defaults for a folder of theme videos.
type Config struct {
	Version int          `yaml:"version"`
	BaseURL string       `yaml:"base_url"`
	Poster  PosterConfig `yaml:"poster"`
}

// PosterConfig holds poster extraction defaults.
type PosterConfig struct {
	// PositionPercent picks the poster frame as a percentage of the
	// video duration.
	PositionPercent int `yaml:"position_percent"`
	// Quality is JPEG quality 1-100.
	Quality int `yaml:"quality"`
	// Width/Height set the poster output size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		BaseURL: "./assets/media/",
		Poster: PosterConfig{
			PositionPercent: 25,
			Quality:         85,
			Width:           640,
			Height:          360,
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults backfills zero values with the baseline settings so a
// partial YAML file still yields a usable configuration.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Poster.PositionPercent == 0 {
		c.Poster.PositionPercent = defaults.Poster.PositionPercent
	}
	if c.Poster.Quality == 0 {
		c.Poster.Quality = defaults.Poster.Quality
	}
	if c.Poster.Width == 0 {
		c.Poster.Width = defaults.Poster.Width
	}
	if c.Poster.Height == 0 {
		c.Poster.Height = defaults.Poster.Height
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
