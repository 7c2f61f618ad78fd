package common

import "errors"

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// StreamError represents stream-related errors
type StreamError struct {
	Type    StreamType `json:"type"`
	URL     string     `json:"url"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Cause   error      `json:"-"`
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeEmptyPlaylist = "EMPTY_PLAYLIST"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeNoVariants    = "NO_VARIANTS"
	ErrCodeCancelled     = "CANCELLED"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeConnection    = "CONNECTION_FAILED"
	ErrCodeHTTPStatus    = "HTTP_STATUS"
	ErrCodeIncomplete    = "INCOMPLETE_ASSEMBLY"
	ErrCodeRemux         = "REMUX_FAILED"
)

// NewStreamError creates a new stream error
func NewStreamError(streamType StreamType, url, code, message string, cause error) *StreamError {
	return &StreamError{
		Type:    streamType,
		URL:     url,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err is, or wraps, a StreamError carrying the
// given code.
func IsCode(err error, code string) bool {
	var se *StreamError
	return errors.As(err, &se) && se.Code == code
}
