package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfigIsValid(t *testing.T) {
	config := GetDefaultConfig()
	require.NoError(t, ValidateConfig(config))

	assert.Equal(t, 4, config.Download.Workers)
	assert.Equal(t, 30*time.Second, config.Download.SegmentTimeout)
	assert.Equal(t, 30*time.Second, config.Stream.ConnectionTimeout)
	assert.NotEmpty(t, config.Stream.UserAgent)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero connection timeout", func(c *Config) { c.Stream.ConnectionTimeout = 0 }},
		{"zero workers", func(c *Config) { c.Download.Workers = 0 }},
		{"negative segment timeout", func(c *Config) { c.Download.SegmentTimeout = -time.Second }},
		{"negative max redirects", func(c *Config) { c.Stream.MaxRedirects = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.mutate(config)
			assert.Error(t, ValidateConfig(config))
		})
	}
}

func TestSetDefaultsRespectsExistingValues(t *testing.T) {
	v := viper.New()
	v.Set("download.workers", 16)

	SetDefaults(v)

	assert.Equal(t, 16, v.GetInt("download.workers"))
	assert.Equal(t, 30*time.Second, v.GetDuration("download.segment_timeout"))
	assert.Equal(t, defaultUserAgent, v.GetString("stream.user_agent"))
}
