package configs

import (
	"time"

	"github.com/spf13/viper"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Stream transport defaults
	if !v.IsSet("stream.connection_timeout") {
		v.Set("stream.connection_timeout", 30*time.Second)
	}
	if !v.IsSet("stream.max_redirects") {
		v.Set("stream.max_redirects", 3)
	}
	if !v.IsSet("stream.user_agent") {
		v.Set("stream.user_agent", defaultUserAgent)
	}
	if !v.IsSet("stream.headers") {
		v.Set("stream.headers", map[string]string{})
	}

	// Segment download defaults
	if !v.IsSet("download.workers") {
		v.Set("download.workers", 4)
	}
	if !v.IsSet("download.segment_timeout") {
		v.Set("download.segment_timeout", 30*time.Second)
	}

	// Remux defaults
	if !v.IsSet("remux.ffmpeg_path") {
		v.Set("remux.ffmpeg_path", "")
	}
}

// GetDefaultConfig returns a complete default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Verbose:  false,
		Stream:   GetDefaultStreamConfig(),
		Download: GetDefaultDownloadConfig(),
		Remux:    RemuxConfig{},
	}
}

// GetDefaultStreamConfig returns default stream transport settings
func GetDefaultStreamConfig() StreamConfig {
	return StreamConfig{
		ConnectionTimeout: 30 * time.Second,
		MaxRedirects:      3,
		UserAgent:         defaultUserAgent,
		Headers:           map[string]string{},
	}
}

// GetDefaultDownloadConfig returns default segment pool settings
func GetDefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		Workers:        4,
		SegmentTimeout: 30 * time.Second,
	}
}
