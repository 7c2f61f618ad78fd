package hls

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

// Client fetches and parses M3U8 manifests over HTTP. Redirects are
// followed by the underlying http.Client; relative references are still
// resolved against the URL that was requested, not the final one.
type Client struct {
	client  *http.Client
	headers http.Header
	logger  logging.Logger
}

// NewClient creates a manifest client sharing the pipeline's HTTP client
// and immutable header set
func NewClient(client *http.Client, headers http.Header, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Client{client: client, headers: headers, logger: logger}
}

// FetchManifest retrieves and parses the manifest at the given URL
func (c *Client) FetchManifest(ctx context.Context, manifestURL string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, common.NewStreamError(common.StreamTypeHLS, manifestURL,
			common.ErrCodeConnection, "failed to create request", err)
	}

	req.Header = c.headers.Clone()
	req.Header.Set("Accept", "application/vnd.apple.mpegurl,application/x-mpegurl,text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(manifestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewStreamError(common.StreamTypeHLS, manifestURL,
			common.ErrCodeHTTPStatus, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status), nil)
	}

	manifest, err := Parse(resp.Body)
	if err != nil {
		if se, ok := err.(*common.StreamError); ok && se.URL == "" {
			se.URL = manifestURL
		}
		return nil, err
	}

	c.logger.Debug("Fetched manifest", logging.Fields{
		"url":       manifestURL,
		"is_master": manifest.IsMaster,
		"variants":  len(manifest.Variants),
		"segments":  len(manifest.Segments),
	})

	return manifest, nil
}
