package hls

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

// Quality tokens understood by the selector. Any other non-empty value is
// treated as a resolution substring match; an empty value asks the
// Chooser to pick interactively.
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

// Chooser picks one variant from a list sorted best-first. It is the
// pluggable capability behind interactive selection, so automated
// contexts can supply a deterministic implementation. A cancelled context
// must surface as a CANCELLED error, not a blocked read.
type Chooser interface {
	Choose(ctx context.Context, variants []Variant) (int, error)
}

// Selector resolves a quality preference against a variant index
type Selector struct {
	chooser Chooser
	logger  logging.Logger
}

// NewSelector creates a variant selector. The chooser is only consulted
// when the quality preference is empty; it may be nil otherwise.
func NewSelector(chooser Chooser, logger logging.Logger) *Selector {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Selector{chooser: chooser, logger: logger}
}

// Select picks exactly one variant according to the quality preference.
// Variants without resolution information are filtered out first; if none
// remain the selection fails with NO_VARIANTS. An unmatched substring
// preference falls back to best quality with a warning, never an error.
func (s *Selector) Select(ctx context.Context, variants []Variant, quality string) (Variant, error) {
	usable := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.HasResolution() {
			usable = append(usable, v)
		}
	}

	if len(usable) == 0 {
		return Variant{}, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeNoVariants, "no variants with resolution information", nil)
	}

	// Best-first: height descending, bandwidth breaking ties
	sort.SliceStable(usable, func(i, j int) bool {
		if usable[i].Height != usable[j].Height {
			return usable[i].Height > usable[j].Height
		}
		return usable[i].Bandwidth > usable[j].Bandwidth
	})

	switch {
	case quality == QualityBest:
		return usable[0], nil

	case quality == QualityWorst:
		// Lowest height, but the same max-bandwidth tie-break as best.
		// The sort leaves the lowest-height group as a suffix ordered by
		// bandwidth descending, so its first member wins.
		minHeight := usable[len(usable)-1].Height
		for _, v := range usable {
			if v.Height == minHeight {
				return v, nil
			}
		}
		return usable[len(usable)-1], nil

	case quality != "":
		for _, v := range usable {
			if strings.Contains(strings.ToLower(v.Resolution()), strings.ToLower(quality)) {
				return v, nil
			}
		}
		s.logger.Warn("Requested quality not found, using best", logging.Fields{
			"quality": quality,
			"best":    usable[0].Resolution(),
		})
		return usable[0], nil

	default:
		if s.chooser == nil {
			return usable[0], nil
		}
		idx, err := s.chooser.Choose(ctx, usable)
		if err != nil {
			return Variant{}, err
		}
		if idx < 0 || idx >= len(usable) {
			return Variant{}, fmt.Errorf("chooser returned index %d out of range", idx)
		}
		return usable[idx], nil
	}
}

// ConsoleChooser prompts on Out and blocks for a 1-based choice on In.
// Cancellation of the context aborts the prompt with a CANCELLED error.
type ConsoleChooser struct {
	In  io.Reader
	Out io.Writer
}

type chooseReply struct {
	idx int
	err error
}

// Choose implements Chooser over an interactive console
func (c *ConsoleChooser) Choose(ctx context.Context, variants []Variant) (int, error) {
	fmt.Fprintf(c.Out, "\nAvailable qualities:\n")
	for i, v := range variants {
		fmt.Fprintf(c.Out, "%d. %s (%d bps)\n", i+1, v.Resolution(), v.Bandwidth)
	}

	replies := make(chan chooseReply, 1)
	go func() {
		scanner := bufio.NewScanner(c.In)
		for {
			fmt.Fprintf(c.Out, "\nSelect quality (1-%d): ", len(variants))
			if !scanner.Scan() {
				err := scanner.Err()
				if err == nil {
					err = io.EOF
				}
				replies <- chooseReply{err: common.NewStreamError(common.StreamTypeHLS, "",
					common.ErrCodeCancelled, "selection input closed", err)}
				return
			}

			choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || choice < 1 || choice > len(variants) {
				fmt.Fprintf(c.Out, "Invalid choice. Enter a number between 1 and %d\n", len(variants))
				continue
			}

			replies <- chooseReply{idx: choice - 1}
			return
		}
	}()

	select {
	case <-ctx.Done():
		// The reader goroutine stays parked on c.In until the process
		// exits or the input produces a line; stdin has no portable
		// cancellable read.
		return 0, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeCancelled, "quality selection cancelled", ctx.Err())
	case reply := <-replies:
		return reply.idx, reply.err
	}
}

// CleanBaseURL strips query and fragment from the requested manifest URL.
// Variant references must resolve against this cleaned form of the URL
// the caller asked for, never against a redirected or query-bearing final
// request URL.
func CleanBaseURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid manifest URL: %w", err)
	}

	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// ResolveURL resolves a possibly relative URI against a base URL
func ResolveURL(baseURL, uri string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	ref, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}

	return base.ResolveReference(ref).String(), nil
}
