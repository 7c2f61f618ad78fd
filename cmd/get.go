package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/hlsget/internal/app"
)

var (
	getOutputPath string
	getQuality    string
	getHeaders    string
	getWorkers    int
	getTimeout    time.Duration
)

var getCmd = &cobra.Command{
	Use:   "get [url]",
	Short: "Download an HLS stream to a single MP4 file",
	Long: `Download the HLS playlist at the given URL, fetch every media segment
and remux the result into one MP4 file.

When the URL points at a master playlist a quality variant is selected
first. With --quality the selection is automatic ('best', 'worst', or a
resolution substring such as '720'); without it the available variants
are listed for interactive choice.

Examples:
  # Best quality, default output name
  hlsget get --quality best https://example.com/playlist.m3u8

  # Match a 720p variant and name the output
  hlsget get -o video.mp4 --quality 720 https://example.com/master.m3u8

  # Protected origin needing a Referer
  hlsget get --quality best --headers 'Referer: https://example.com' https://example.com/master.m3u8`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutputPath, "output", "o", "",
		"output file path (default encodes the segment count)")
	getCmd.Flags().StringVar(&getQuality, "quality", "",
		"quality selection: best, worst, or a resolution substring (interactive when omitted)")
	getCmd.Flags().StringVar(&getHeaders, "headers", "",
		`custom request headers, "Name: Value, Name: Value"`)
	getCmd.Flags().IntVarP(&getWorkers, "workers", "w", 0,
		"number of concurrent segment downloads (default 4)")
	getCmd.Flags().DurationVar(&getTimeout, "timeout", 0,
		"per-request timeout for manifest and segment fetches (default 30s)")
}

func runGet(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		URL:        args[0],
		OutputPath: getOutputPath,
		Quality:    getQuality,
		HeaderSpec: getHeaders,
		ConfigFile: configFile,
		Workers:    getWorkers,
		Timeout:    getTimeout,
		Verbose:    viper.GetBool("verbose"),
		Quiet:      viper.GetBool("quiet"),
	}

	application, err := app.NewApp(appCtx)
	if err != nil {
		return err
	}

	// An interrupt during interactive selection (or any later stage)
	// cancels the pipeline; working-area cleanup still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
