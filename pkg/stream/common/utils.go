package common

import (
	"net/http"
	"strings"
)

// ParseHeaderSpec parses a free-text header specification of the form
// "Name: Value, Name: Value" into an http.Header. Pairs without a colon
// are skipped rather than failing the whole spec.
func ParseHeaderSpec(spec string) http.Header {
	headers := make(http.Header)

	for _, pair := range strings.Split(spec, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		headers.Set(key, value)
	}

	return headers
}

// HeadersFromMap converts a configuration header map into an http.Header
func HeadersFromMap(m map[string]string) http.Header {
	headers := make(http.Header, len(m))
	for key, value := range m {
		headers.Set(key, value)
	}
	return headers
}

// MergeHeaders returns a new header set with overrides applied on top of
// base. Neither input is mutated; fetches share one immutable header set
// built before any request goes out.
func MergeHeaders(base http.Header, overrides http.Header) http.Header {
	merged := make(http.Header, len(base)+len(overrides))

	for key, values := range base {
		merged[key] = append([]string(nil), values...)
	}
	for key := range overrides {
		merged.Set(key, overrides.Get(key))
	}

	return merged
}
