package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/schollz/progressbar/v3"

	"github.com/RyanBlaney/hlsget/configs"
	"github.com/RyanBlaney/hlsget/internal/pipeline"
	"github.com/RyanBlaney/hlsget/pkg/stream/common"
	"github.com/RyanBlaney/hlsget/pkg/stream/hls"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	URL        string
	OutputPath string
	Quality    string
	HeaderSpec string
	ConfigFile string
	Workers    int
	Timeout    time.Duration
	Verbose    bool
	Quiet      bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App handles the download application lifecycle
type App struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

// NewApp creates a new download application
func NewApp(ctx *Context) (*App, error) {
	logger := logging.NewDefaultLogger()
	ctx.Logger = logger

	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger.Debug("Application initialized", logging.Fields{
		"url":     ctx.URL,
		"quality": ctx.Quality,
		"workers": config.Download.Workers,
	})

	return &App{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Run executes the download pipeline
func (app *App) Run(ctx context.Context) error {
	orchestrator := pipeline.NewOrchestrator(app.config, app.chooser(), app.progressSink(), app.logger)
	if app.config.Remux.FFmpegPath != "" {
		orchestrator.SetFFmpegPath(app.config.Remux.FFmpegPath)
	}

	outputPath, err := orchestrator.Run(ctx, pipeline.Options{
		URL:        app.ctx.URL,
		OutputPath: app.ctx.OutputPath,
		Quality:    app.ctx.Quality,
		HeaderSpec: app.ctx.HeaderSpec,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nDownload completed: %s\n", outputPath)
	return nil
}

// chooser returns the interactive console chooser unless a quality token
// was given, in which case selection never blocks for input
func (app *App) chooser() hls.Chooser {
	if app.ctx.Quality != "" {
		return nil
	}
	return &hls.ConsoleChooser{In: os.Stdin, Out: os.Stderr}
}

// progressSink builds the console progress bar, created lazily on the
// first update because the segment total is only known once the media
// playlist is parsed
func (app *App) progressSink() common.ProgressSink {
	if app.ctx.Quiet {
		return common.NopProgress{}
	}

	// Updates arrive from multiple download workers
	var mu sync.Mutex
	var bar *progressbar.ProgressBar
	return common.ProgressFunc(func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("downloading segments"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(completed)
	})
}

// loadAndMergeConfig loads configuration and merges CLI overrides
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	if ctx.ConfigFile != "" {
		fileConfig, err := LoadConfigFromFile(ctx.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(config, fileConfig)
	}

	// CLI flags take precedence over config files
	if ctx.Workers > 0 {
		config.Download.Workers = ctx.Workers
	}
	if ctx.Timeout > 0 {
		config.Stream.ConnectionTimeout = ctx.Timeout
		config.Download.SegmentTimeout = ctx.Timeout
	}
	if ctx.Verbose {
		config.Verbose = true
	}
	if ctx.Quiet {
		config.Quiet = true
	}

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// mergeConfig overlays non-zero file settings onto the base config
func mergeConfig(base, overlay *configs.Config) {
	if overlay.Stream.ConnectionTimeout > 0 {
		base.Stream.ConnectionTimeout = overlay.Stream.ConnectionTimeout
	}
	if overlay.Stream.UserAgent != "" {
		base.Stream.UserAgent = overlay.Stream.UserAgent
	}
	if len(overlay.Stream.Headers) > 0 {
		base.Stream.Headers = overlay.Stream.Headers
	}
	if overlay.Download.Workers > 0 {
		base.Download.Workers = overlay.Download.Workers
	}
	if overlay.Download.SegmentTimeout > 0 {
		base.Download.SegmentTimeout = overlay.Download.SegmentTimeout
	}
	if overlay.Remux.FFmpegPath != "" {
		base.Remux.FFmpegPath = overlay.Remux.FFmpegPath
	}
}
