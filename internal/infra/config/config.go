// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Layout    string          `yaml:"layout" default:"single" validate:"oneof=single horizontal vertical quad"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Slideshow SlideshowConfig `yaml:"slideshow"`
	Playlists PlaylistsConfig `yaml:"playlists"`
	Log       LogConfig       `yaml:"log"`
}

// PlaybackConfig represents transport defaults.
type PlaybackConfig struct {
	Volume  float64 `yaml:"volume" default:"1.0" validate:"gte=0,lte=1"`
	Shuffle bool    `yaml:"shuffle"`
	Repeat  string  `yaml:"repeat" default:"none" validate:"oneof=none one all"`
}

// SlideshowConfig represents slideshow settings.
type SlideshowConfig struct {
	Enabled     bool   `yaml:"enabled"`
	IntervalSec int    `yaml:"interval_sec" default:"5" validate:"gte=1"`
	Mode        string `yaml:"mode" default:"all_at_once" validate:"oneof=all_at_once rotating"`
}

// Interval returns the slideshow interval as a duration.
func (c SlideshowConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSec) * time.Second
}

// PlaylistsConfig represents the playlist backend configuration.
type PlaylistsConfig struct {
	Dir     string `yaml:"dir" default:"playlists"`
	Startup string `yaml:"startup"` // Playlist loaded at startup, empty for none
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"stdout"`
	Level  string `yaml:"level" default:"info"`
	File   string `yaml:"file"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Default returns the configuration with all defaults applied, used when
// no config file exists.
func Default() (*Config, error) {
	var cfg Config
	cfg.overrideFromEnv()
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PANEBOX_LAYOUT"); v != "" {
		c.Layout = v
	}
	if v := os.Getenv("PANEBOX_PLAYLIST_DIR"); v != "" {
		c.Playlists.Dir = v
	}
	if v := os.Getenv("PANEBOX_STARTUP_PLAYLIST"); v != "" {
		c.Playlists.Startup = v
	}
	if v := os.Getenv("PANEBOX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
