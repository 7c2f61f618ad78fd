// Package stream exposes protocol detection over the stream handlers
package stream

import (
	"context"
	"net/http"
	"time"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
	"github.com/RyanBlaney/hlsget/pkg/stream/hls"
)

// Detector identifies the protocol behind a URL, cheaply from the URL
// shape first and with a HEAD probe only when that is inconclusive
type Detector struct {
	client  *http.Client
	headers http.Header
}

// NewDetector creates a detector with its own short-timeout probe client
func NewDetector(headers http.Header, maxRedirects int) *Detector {
	return &Detector{
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		headers: headers,
	}
}

// DetectType returns the stream type behind streamURL. URL-based
// detection wins when it matches; otherwise the Content-Type of a HEAD
// response decides.
func (d *Detector) DetectType(ctx context.Context, streamURL string) common.StreamType {
	if streamType := hls.DetectFromURL(streamURL); streamType != common.StreamTypeUnsupported {
		return streamType
	}

	return hls.DetectFromHeaders(ctx, d.client, streamURL, d.headers)
}
