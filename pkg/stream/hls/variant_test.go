package hls

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

var testVariants = []Variant{
	{URI: "360p.m3u8", Bandwidth: 500000, Width: 640, Height: 360},
	{URI: "1080p.m3u8", Bandwidth: 3000000, Width: 1920, Height: 1080},
}

func TestSelectBest(t *testing.T) {
	selector := NewSelector(nil, nil)

	variant, err := selector.Select(context.Background(), testVariants, QualityBest)
	require.NoError(t, err)
	assert.Equal(t, "1080p.m3u8", variant.URI)
}

func TestSelectWorst(t *testing.T) {
	selector := NewSelector(nil, nil)

	variant, err := selector.Select(context.Background(), testVariants, QualityWorst)
	require.NoError(t, err)
	assert.Equal(t, "360p.m3u8", variant.URI)
}

func TestSelectMatch(t *testing.T) {
	selector := NewSelector(nil, nil)

	variant, err := selector.Select(context.Background(), testVariants, "360")
	require.NoError(t, err)
	assert.Equal(t, "360p.m3u8", variant.URI)
}

func TestSelectMatchFallsBackToBest(t *testing.T) {
	selector := NewSelector(nil, nil)

	// An unmatched substring falls back to best with a warning, never errors
	variant, err := selector.Select(context.Background(), testVariants, "4k")
	require.NoError(t, err)
	assert.Equal(t, "1080p.m3u8", variant.URI)
}

func TestSelectBestBreaksTiesByBandwidth(t *testing.T) {
	variants := []Variant{
		{URI: "low.m3u8", Bandwidth: 1000000, Width: 1280, Height: 720},
		{URI: "high.m3u8", Bandwidth: 2000000, Width: 1280, Height: 720},
	}
	selector := NewSelector(nil, nil)

	variant, err := selector.Select(context.Background(), variants, QualityBest)
	require.NoError(t, err)
	assert.Equal(t, "high.m3u8", variant.URI)
}

func TestSelectWorstBreaksTiesByBandwidth(t *testing.T) {
	variants := []Variant{
		{URI: "1080p.m3u8", Bandwidth: 5000000, Width: 1920, Height: 1080},
		{URI: "low.m3u8", Bandwidth: 1000000, Width: 1280, Height: 720},
		{URI: "high.m3u8", Bandwidth: 2000000, Width: 1280, Height: 720},
	}
	selector := NewSelector(nil, nil)

	// Among tied lowest heights the higher bandwidth wins, same as best
	variant, err := selector.Select(context.Background(), variants, QualityWorst)
	require.NoError(t, err)
	assert.Equal(t, "high.m3u8", variant.URI)
}

func TestSelectFiltersVariantsWithoutResolution(t *testing.T) {
	variants := []Variant{
		{URI: "audio.m3u8", Bandwidth: 128000},
		{URI: "720p.m3u8", Bandwidth: 1280000, Width: 1280, Height: 720},
	}
	selector := NewSelector(nil, nil)

	variant, err := selector.Select(context.Background(), variants, QualityWorst)
	require.NoError(t, err)
	assert.Equal(t, "720p.m3u8", variant.URI)
}

func TestSelectNoVariants(t *testing.T) {
	variants := []Variant{
		{URI: "audio.m3u8", Bandwidth: 128000},
	}
	selector := NewSelector(nil, nil)

	_, err := selector.Select(context.Background(), variants, QualityBest)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeNoVariants))
}

// fixedChooser always picks the same index
type fixedChooser struct {
	idx int
}

func (c fixedChooser) Choose(ctx context.Context, variants []Variant) (int, error) {
	return c.idx, nil
}

func TestSelectInteractive(t *testing.T) {
	selector := NewSelector(fixedChooser{idx: 1}, nil)

	// Chooser sees the list sorted best-first
	variant, err := selector.Select(context.Background(), testVariants, "")
	require.NoError(t, err)
	assert.Equal(t, "360p.m3u8", variant.URI)
}

func TestConsoleChooserReadsChoice(t *testing.T) {
	var out bytes.Buffer
	chooser := &ConsoleChooser{In: strings.NewReader("2\n"), Out: &out}

	idx, err := chooser.Choose(context.Background(), testVariants)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "Available qualities")
}

func TestConsoleChooserRejectsInvalidThenAccepts(t *testing.T) {
	var out bytes.Buffer
	chooser := &ConsoleChooser{In: strings.NewReader("nope\n9\n1\n"), Out: &out}

	idx, err := chooser.Choose(context.Background(), testVariants)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestConsoleChooserCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// A reader that never produces input
	blocked, _ := io.Pipe()
	chooser := &ConsoleChooser{In: blocked, Out: io.Discard}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := chooser.Choose(ctx, testVariants)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeCancelled))
}

func TestCleanBaseURL(t *testing.T) {
	cleaned, err := CleanBaseURL("https://cdn.example.com/live/master.m3u8?token=abc#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/live/master.m3u8", cleaned)
}

func TestResolveURLRelative(t *testing.T) {
	resolved, err := ResolveURL("https://cdn.example.com/live/master.m3u8", "720p/index.m3u8")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/live/720p/index.m3u8", resolved)
}

func TestResolveURLAbsolute(t *testing.T) {
	resolved, err := ResolveURL("https://cdn.example.com/live/master.m3u8", "https://other.example.com/v.m3u8")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/v.m3u8", resolved)
}

// Variant references must resolve against the cleaned form of the URL
// that was requested, not a query-bearing final URL.
func TestVariantResolutionIgnoresQuery(t *testing.T) {
	base, err := CleanBaseURL("https://cdn.example.com/live/master.m3u8?session=xyz")
	require.NoError(t, err)

	resolved, err := ResolveURL(base, "1080p.m3u8")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/live/1080p.m3u8", resolved)
}
