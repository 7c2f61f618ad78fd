package common

// StreamType represents the type of a media stream
type StreamType string

const (
	StreamTypeHLS         StreamType = "hls"
	StreamTypeUnsupported StreamType = "unsupported"
)

// ProgressSink receives download progress updates. Completed counts both
// successful and failed segment fetches; it is monotonically increasing
// and reaches total exactly once per download.
type ProgressSink interface {
	Progress(completed, total int)
}

// ProgressFunc adapts a function to the ProgressSink interface
type ProgressFunc func(completed, total int)

func (f ProgressFunc) Progress(completed, total int) {
	f(completed, total)
}

// NopProgress discards progress updates
type NopProgress struct{}

func (NopProgress) Progress(completed, total int) {}
