package hls

import (
	"io"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"

	"github.com/RyanBlaney/hlsget/pkg/stream/common"
)

// Parse decodes an M3U8 document into a Manifest. The document is either
// a master playlist (variant index) or a media playlist (segment list);
// a Manifest never carries both.
//
// A variant entry missing stream-information attributes is kept with
// zero-value bandwidth/resolution rather than aborting the parse. A
// document with no entries of either kind is an EMPTY_PLAYLIST error;
// content that is not recognizable M3U8 is INVALID_FORMAT.
func Parse(reader io.Reader) (*Manifest, error) {
	playlist, listType, err := m3u8.DecodeFrom(reader, true)
	if err != nil {
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeInvalidFormat, "not a valid M3U8 document", err)
	}

	switch listType {
	case m3u8.MASTER:
		return parseMaster(playlist)
	case m3u8.MEDIA:
		return parseMedia(playlist)
	default:
		// A syntactically valid document that defines neither variants nor
		// segments has no entries to work with.
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeEmptyPlaylist, "playlist contains no entries", nil)
	}
}

func parseMaster(playlist m3u8.Playlist) (*Manifest, error) {
	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeInvalidFormat, "unexpected master playlist type", nil)
	}

	variants := make([]Variant, 0, len(master.Variants))
	for _, v := range master.Variants {
		if v == nil || v.URI == "" {
			continue
		}

		width, height := parseResolution(v.Resolution)
		variants = append(variants, Variant{
			URI:       v.URI,
			Bandwidth: int(v.Bandwidth),
			Width:     width,
			Height:    height,
			Codecs:    v.Codecs,
		})
	}

	if len(variants) == 0 {
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeEmptyPlaylist, "master playlist contains no variants", nil)
	}

	return &Manifest{IsMaster: true, Variants: variants}, nil
}

func parseMedia(playlist m3u8.Playlist) (*Manifest, error) {
	media, ok := playlist.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeInvalidFormat, "unexpected media playlist type", nil)
	}

	var segments []Segment
	for _, seg := range media.Segments {
		// grafov pre-allocates the segment slice; the first nil marks the end
		if seg == nil {
			break
		}

		segments = append(segments, Segment{
			URI:      seg.URI,
			Sequence: len(segments),
			Duration: seg.Duration,
		})
	}

	if len(segments) == 0 {
		return nil, common.NewStreamError(common.StreamTypeHLS, "",
			common.ErrCodeEmptyPlaylist, "media playlist contains no segments", nil)
	}

	return &Manifest{
		Segments:       segments,
		TargetDuration: media.TargetDuration,
	}, nil
}

// parseResolution parses a "WxH" attribute value. Malformed or absent
// values yield (0, 0), which marks the variant as resolution-less.
func parseResolution(resolution string) (width, height int) {
	w, h, ok := strings.Cut(strings.ToLower(resolution), "x")
	if !ok {
		return 0, 0
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0
	}
	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0
	}

	return width, height
}
