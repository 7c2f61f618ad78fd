package hls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

// PartialFailureError reports how many segment fetches failed. The full
// result set is still returned alongside it so the caller can decide
// whether a partial assembly is acceptable; this pipeline treats any
// failure as fatal at the assembly boundary.
type PartialFailureError struct {
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("failed to download %d of %d segments", e.Failed, e.Total)
}

// SegmentDownloader fetches all segments of a media playlist using a
// bounded pool of concurrent workers
type SegmentDownloader struct {
	client  *http.Client
	config  *DownloadConfig
	headers http.Header
	logger  logging.Logger
}

// NewSegmentDownloader creates a segment downloader. The header set is
// built once by the caller and treated as immutable for the lifetime of
// the pool.
func NewSegmentDownloader(client *http.Client, config *DownloadConfig, headers http.Header, logger logging.Logger) *SegmentDownloader {
	if config == nil {
		config = DefaultDownloadConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &SegmentDownloader{
		client:  client,
		config:  config,
		headers: headers,
		logger:  logger,
	}
}

// FetchAll retrieves every segment, resolving each URI against baseURL.
// It always attempts all segments and returns exactly one result per
// sequence index regardless of worker count or completion order; workers
// never abort their siblings. The sink is notified exactly once per
// completed fetch, success or failure. When one or more segments failed
// the returned error is a *PartialFailureError and the result set is
// still complete.
func (d *SegmentDownloader) FetchAll(ctx context.Context, baseURL string, segments []Segment, sink common.ProgressSink) ([]SegmentResult, error) {
	total := len(segments)
	results := make([]SegmentResult, total)

	if sink == nil {
		sink = common.NopProgress{}
	}

	workers := d.config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	logger := logging.WithFields(logging.Fields{
		"component": "segment_downloader",
		"segments":  total,
		"workers":   workers,
	})
	logger.Debug("Starting segment downloads")

	jobs := make(chan Segment)
	var completed int64
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range jobs {
				data, err := d.fetchSegment(ctx, baseURL, seg)

				// Disjoint writes: each worker owns exactly the indices it
				// pulled from the queue, so no lock is needed here.
				results[seg.Sequence] = SegmentResult{
					Sequence: seg.Sequence,
					Data:     data,
					Err:      err,
				}

				sink.Progress(int(atomic.AddInt64(&completed, 1)), total)
			}
		}()
	}

	for _, seg := range segments {
		jobs <- seg
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, result := range results {
		if !result.OK() {
			failed++
		}
	}

	if failed > 0 {
		logger.Warn("Segment downloads finished with failures", logging.Fields{
			"failed": failed,
		})
		return results, &PartialFailureError{Failed: failed, Total: total}
	}

	logger.Debug("All segments downloaded")
	return results, nil
}

// fetchSegment retrieves a single segment's bytes with the per-request
// timeout applied. All failure modes come back as StreamErrors carrying
// a distinct cause code; they are captured, not thrown.
func (d *SegmentDownloader) fetchSegment(ctx context.Context, baseURL string, seg Segment) ([]byte, error) {
	segmentURL, err := ResolveURL(baseURL, seg.URI)
	if err != nil {
		return nil, common.NewStreamError(common.StreamTypeHLS, seg.URI,
			common.ErrCodeConnection, "failed to resolve segment URL", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, d.config.SegmentTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, segmentURL, nil)
	if err != nil {
		return nil, common.NewStreamError(common.StreamTypeHLS, segmentURL,
			common.ErrCodeConnection, "failed to create request", err)
	}
	req.Header = d.headers.Clone()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(segmentURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, common.NewStreamError(common.StreamTypeHLS, segmentURL,
			common.ErrCodeHTTPStatus, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(segmentURL, err)
	}

	return data, nil
}

// classifyTransportError maps a transport failure to either a TIMEOUT or
// a CONNECTION_FAILED stream error
func classifyTransportError(url string, err error) *common.StreamError {
	if isTimeout(err) {
		return common.NewStreamError(common.StreamTypeHLS, url,
			common.ErrCodeTimeout, "request timed out", err)
	}
	return common.NewStreamError(common.StreamTypeHLS, url,
		common.ErrCodeConnection, "request failed", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
