package hls

import (
	"net/http"
	"time"
)

// DownloadConfig contains configuration for the segment fetcher pool
type DownloadConfig struct {
	Workers        int           `json:"workers"`
	SegmentTimeout time.Duration `json:"segment_timeout"`
}

// DefaultDownloadConfig returns the default segment pool settings
func DefaultDownloadConfig() *DownloadConfig {
	return &DownloadConfig{
		Workers:        4,
		SegmentTimeout: 30 * time.Second,
	}
}

// DefaultHeaders returns the baseline request header set. Custom headers
// are merged on top of these once, before any fetch begins.
func DefaultHeaders(userAgent string) http.Header {
	headers := make(http.Header)
	headers.Set("User-Agent", userAgent)
	headers.Set("Accept", "*/*")
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	headers.Set("Connection", "keep-alive")
	return headers
}
