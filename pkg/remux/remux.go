// Package remux drives the external ffmpeg collaborator to repackage an
// ordered segment stream into a single output container, preferring a
// zero-recode stream copy and falling back to a full transcode.
package remux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
	"github.com/RyanBlaney/hlsget/pkg/stream/hls"
)

// Strategy is one remux attempt expressed as data: a name for logging and
// the codec arguments handed to ffmpeg. Strategies are evaluated in order
// until one succeeds.
type Strategy struct {
	Name string
	Args []string
}

// DefaultStrategies returns the copy-then-transcode fallback chain
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "copy", Args: []string{"-c", "copy"}},
		{Name: "transcode", Args: []string{"-c:v", "libx264", "-c:a", "aac"}},
	}
}

// Orchestrator materializes an assembled stream inside a scoped working
// directory and invokes ffmpeg over it. It does not own the directory;
// the pipeline creates it and guarantees removal on every exit path.
type Orchestrator struct {
	workDir    string
	ffmpegPath string
	strategies []Strategy
	logger     logging.Logger
}

// NewOrchestrator creates a remux orchestrator rooted at workDir
func NewOrchestrator(workDir string, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	ffmpegPath := "ffmpeg"
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		ffmpegPath = path
	}

	return &Orchestrator{
		workDir:    workDir,
		ffmpegPath: ffmpegPath,
		strategies: DefaultStrategies(),
		logger:     logger,
	}
}

// SetFFmpegPath overrides the ffmpeg binary location
func (o *Orchestrator) SetFFmpegPath(path string) {
	o.ffmpegPath = path
}

// DefaultOutputName synthesizes an output filename encoding the segment
// count, used when the caller gave no output path
func DefaultOutputName(segmentCount int) string {
	return fmt.Sprintf("downloaded_video_%d_segments.mp4", segmentCount)
}

// Remux writes the assembled stream to disk in index order and runs the
// strategy chain over it. Only the final outcome surfaces: an
// intermediate copy failure is logged and retried as a transcode, and
// only when every strategy has failed does the caller see a REMUX_FAILED
// error. Returns the path of the written output file.
func (o *Orchestrator) Remux(ctx context.Context, stream *hls.AssembledStream, outputPath string) (string, error) {
	if len(stream.Chunks) == 0 {
		return "", common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeRemux, "no segments to remux", nil)
	}

	if outputPath == "" {
		outputPath = DefaultOutputName(len(stream.Chunks))
	}

	concatFile, err := o.materialize(stream)
	if err != nil {
		return "", err
	}

	logger := logging.WithFields(logging.Fields{
		"component": "remux",
		"segments":  len(stream.Chunks),
		"output":    outputPath,
	})

	var lastErr error
	for _, strategy := range o.strategies {
		if err := o.runFFmpeg(ctx, concatFile, outputPath, strategy); err != nil {
			logger.Warn("Remux attempt failed", logging.Fields{
				"strategy": strategy.Name,
				"error":    err.Error(),
			})
			lastErr = err
			continue
		}

		logger.Debug("Remux completed", logging.Fields{"strategy": strategy.Name})
		return outputPath, nil
	}

	return "", common.NewStreamError(common.StreamTypeHLS, "",
		common.ErrCodeRemux, "both remux attempts failed", lastErr)
}

// materialize writes each chunk as a file in sequence order and produces
// the ffmpeg concat list referencing them
func (o *Orchestrator) materialize(stream *hls.AssembledStream) (string, error) {
	var concat strings.Builder

	for i, chunk := range stream.Chunks {
		segmentFile := filepath.Join(o.workDir, fmt.Sprintf("segment_%05d.ts", i))
		if err := os.WriteFile(segmentFile, chunk, 0644); err != nil {
			return "", fmt.Errorf("failed to write segment %d: %w", i, err)
		}
		fmt.Fprintf(&concat, "file '%s'\n", segmentFile)
	}

	concatFile := filepath.Join(o.workDir, "concat.txt")
	if err := os.WriteFile(concatFile, []byte(concat.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write concat list: %w", err)
	}

	return concatFile, nil
}

func (o *Orchestrator) runFFmpeg(ctx context.Context, concatFile, outputPath string, strategy Strategy) error {
	args := []string{"-y", "-f", "concat", "-safe", "0", "-i", concatFile}
	args = append(args, strategy.Args...)
	args = append(args, "-f", "mp4", outputPath)

	cmd := exec.CommandContext(ctx, o.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s failed: %w (%s)", strategy.Name, err, lastLine(stderr.String()))
	}

	return nil
}

// lastLine extracts the trailing stderr line, which is where ffmpeg puts
// the actual failure reason
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
