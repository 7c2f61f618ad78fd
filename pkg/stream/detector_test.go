package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

func TestDetectTypeFromURLShape(t *testing.T) {
	detector := NewDetector(http.Header{}, 3)

	// No server behind this URL; the shape alone is decisive
	streamType := detector.DetectType(context.Background(), "https://cdn.example.com/live/index.m3u8")
	assert.Equal(t, common.StreamTypeHLS, streamType)
}

func TestDetectTypeFallsBackToHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/manifest" {
			w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		} else {
			w.Header().Set("Content-Type", "text/html")
		}
	}))
	defer server.Close()

	detector := NewDetector(http.Header{}, 3)
	ctx := context.Background()

	assert.Equal(t, common.StreamTypeHLS, detector.DetectType(ctx, server.URL+"/manifest"))
	assert.Equal(t, common.StreamTypeUnsupported, detector.DetectType(ctx, server.URL+"/page"))
}
