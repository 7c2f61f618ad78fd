package hls

import "fmt"

// Variant is one quality rendition referenced by a master playlist.
// Width/Height are zero when the playlist entry carried no RESOLUTION
// attribute; such entries survive parsing but are filtered out before
// quality selection.
type Variant struct {
	URI       string `json:"uri"`
	Bandwidth int    `json:"bandwidth"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Codecs    string `json:"codecs,omitempty"`
}

// HasResolution reports whether the variant carried usable resolution info
func (v Variant) HasResolution() bool {
	return v.Width > 0 && v.Height > 0
}

// Resolution returns the "WxH" form used for matching and display,
// or an empty string when no resolution is known.
func (v Variant) Resolution() string {
	if !v.HasResolution() {
		return ""
	}
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Segment is one media chunk of a media playlist. Sequence is the 0-based
// position in playback order; every later stage keys on it.
type Segment struct {
	URI      string  `json:"uri"`
	Sequence int     `json:"sequence"`
	Duration float64 `json:"duration"`
}

// Manifest is the parsed form of an M3U8 document. Exactly one of
// Variants (master playlist) or Segments (media playlist) is populated.
type Manifest struct {
	IsMaster       bool      `json:"is_master"`
	Variants       []Variant `json:"variants,omitempty"`
	Segments       []Segment `json:"segments,omitempty"`
	TargetDuration float64   `json:"target_duration,omitempty"`
}

// SegmentResult is the outcome of fetching one segment. Exactly one of
// Data or Err is set.
type SegmentResult struct {
	Sequence int
	Data     []byte
	Err      error
}

// OK reports whether the segment fetch succeeded
func (r SegmentResult) OK() bool {
	return r.Err == nil && r.Data != nil
}

// AssembledStream is the ordered byte stream reconstructed from segment
// results. Chunks[i] holds the payload of sequence index i with no gaps.
type AssembledStream struct {
	Chunks [][]byte
}

// Size returns the total payload size in bytes
func (s *AssembledStream) Size() int64 {
	var total int64
	for _, chunk := range s.Chunks {
		total += int64(len(chunk))
	}
	return total
}
