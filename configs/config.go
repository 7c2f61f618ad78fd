package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	Quiet   bool `mapstructure:"quiet" yaml:"quiet"`

	// Stream transport configuration
	Stream StreamConfig `mapstructure:"stream" yaml:"stream"`

	// Segment download configuration
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Remux configuration
	Remux RemuxConfig `mapstructure:"remux" yaml:"remux"`
}

// StreamConfig contains stream handling settings
type StreamConfig struct {
	ConnectionTimeout time.Duration     `mapstructure:"connection_timeout" yaml:"connection_timeout"`
	MaxRedirects      int               `mapstructure:"max_redirects" yaml:"max_redirects"`
	UserAgent         string            `mapstructure:"user_agent" yaml:"user_agent"`
	Headers           map[string]string `mapstructure:"headers" yaml:"headers"`
}

// DownloadConfig contains segment pool settings
type DownloadConfig struct {
	Workers        int           `mapstructure:"workers" yaml:"workers"`
	SegmentTimeout time.Duration `mapstructure:"segment_timeout" yaml:"segment_timeout"`
}

// RemuxConfig contains output remux settings
type RemuxConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path" yaml:"ffmpeg_path"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Stream.ConnectionTimeout <= 0 {
		return fmt.Errorf("connection timeout must be positive")
	}

	if config.Stream.MaxRedirects < 0 {
		return fmt.Errorf("max redirects cannot be negative")
	}

	if config.Download.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	if config.Download.SegmentTimeout <= 0 {
		return fmt.Errorf("segment timeout must be positive")
	}

	return nil
}
