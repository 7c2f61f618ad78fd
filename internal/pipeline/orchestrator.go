// Package pipeline wires the download stages together: manifest
// resolution, variant selection, concurrent segment acquisition, ordered
// assembly and the final remux.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/hlsget/configs"
	"github.com/RyanBlaney/hlsget/pkg/remux"
	"github.com/RyanBlaney/hlsget/pkg/stream"
	"github.com/RyanBlaney/hlsget/pkg/stream/common"
	"github.com/RyanBlaney/hlsget/pkg/stream/hls"
)

// Options carries the per-run request parameters
type Options struct {
	URL        string
	OutputPath string
	Quality    string // "best", "worst", substring, or "" for interactive
	HeaderSpec string // "Name: Value, Name: Value"
}

// Orchestrator executes the full download pipeline for one manifest URL
type Orchestrator struct {
	config  *configs.Config
	chooser hls.Chooser
	sink    common.ProgressSink
	logger  logging.Logger

	ffmpegPath string
}

// NewOrchestrator creates a pipeline orchestrator. The chooser backs
// interactive quality selection; the sink observes segment progress.
func NewOrchestrator(config *configs.Config, chooser hls.Chooser, sink common.ProgressSink, logger logging.Logger) *Orchestrator {
	if config == nil {
		config = configs.GetDefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Orchestrator{
		config:  config,
		chooser: chooser,
		sink:    sink,
		logger:  logger,
	}
}

// SetFFmpegPath overrides the remux binary location, mainly for tests
func (o *Orchestrator) SetFFmpegPath(path string) {
	o.ffmpegPath = path
}

// Run downloads the stream behind opts.URL and returns the path of the
// written output file. The scoped working area is created up front and
// removed on every exit path, including mid-pipeline aborts.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (outputPath string, err error) {
	workDir, err := os.MkdirTemp("", "hlsget_")
	if err != nil {
		return "", fmt.Errorf("failed to create working directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			o.logger.Warn("Failed to clean working directory", logging.Fields{
				"work_dir": workDir,
				"error":    rmErr.Error(),
			})
		}
	}()

	// Precedence: defaults, then config-file headers, then --headers
	headers := common.MergeHeaders(
		hls.DefaultHeaders(o.config.Stream.UserAgent),
		common.HeadersFromMap(o.config.Stream.Headers),
	)
	headers = common.MergeHeaders(headers, common.ParseHeaderSpec(opts.HeaderSpec))

	maxRedirects := o.config.Stream.MaxRedirects
	client := &http.Client{
		Timeout: o.config.Stream.ConnectionTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	detector := stream.NewDetector(headers, maxRedirects)
	if detector.DetectType(ctx, opts.URL) != common.StreamTypeHLS {
		o.logger.Warn("URL does not look like an HLS playlist, attempting anyway", logging.Fields{
			"url": opts.URL,
		})
	}

	manifestClient := hls.NewClient(client, headers, o.logger)

	manifest, err := manifestClient.FetchManifest(ctx, opts.URL)
	if err != nil {
		return "", err
	}

	mediaURL := opts.URL
	if manifest.IsMaster {
		manifest, mediaURL, err = o.resolveVariant(ctx, manifestClient, manifest, opts)
		if err != nil {
			return "", err
		}
	}

	downloadCfg := &hls.DownloadConfig{
		Workers:        o.config.Download.Workers,
		SegmentTimeout: o.config.Download.SegmentTimeout,
	}
	downloader := hls.NewSegmentDownloader(client, downloadCfg, headers, o.logger)

	results, err := downloader.FetchAll(ctx, mediaURL, manifest.Segments, o.sink)
	if err != nil {
		return "", err
	}

	assembled, err := hls.Assemble(results)
	if err != nil {
		return "", common.NewStreamError(common.StreamTypeHLS, mediaURL,
			common.ErrCodeIncomplete, "cannot assemble stream", err)
	}

	orchestrator := remux.NewOrchestrator(workDir, o.logger)
	if o.ffmpegPath != "" {
		orchestrator.SetFFmpegPath(o.ffmpegPath)
	}

	return orchestrator.Remux(ctx, assembled, opts.OutputPath)
}

// resolveVariant picks a variant from the master manifest and fetches its
// media playlist. The variant URI resolves against the requested master
// URL stripped of query and fragment, never against a redirected final
// URL.
func (o *Orchestrator) resolveVariant(ctx context.Context, client *hls.Client, master *hls.Manifest, opts Options) (*hls.Manifest, string, error) {
	selector := hls.NewSelector(o.chooser, o.logger)

	variant, err := selector.Select(ctx, master.Variants, opts.Quality)
	if err != nil {
		return nil, "", err
	}

	base, err := hls.CleanBaseURL(opts.URL)
	if err != nil {
		return nil, "", err
	}

	mediaURL, err := hls.ResolveURL(base, variant.URI)
	if err != nil {
		return nil, "", err
	}

	o.logger.Debug("Selected variant", logging.Fields{
		"resolution": variant.Resolution(),
		"bandwidth":  variant.Bandwidth,
		"media_url":  mediaURL,
	})

	manifest, err := client.FetchManifest(ctx, mediaURL)
	if err != nil {
		return nil, "", err
	}

	if manifest.IsMaster {
		return nil, "", common.NewStreamError(common.StreamTypeHLS, mediaURL,
			common.ErrCodeInvalidFormat, "variant reference led to another master playlist", nil)
	}

	return manifest, mediaURL, nil
}
