package common

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaderSpec(t *testing.T) {
	headers := ParseHeaderSpec("Referer: https://example.com/page, X-Token: abc123")

	assert.Equal(t, "https://example.com/page", headers.Get("Referer"))
	assert.Equal(t, "abc123", headers.Get("X-Token"))
}

func TestParseHeaderSpecSkipsMalformedPairs(t *testing.T) {
	headers := ParseHeaderSpec("no-colon-here, Valid: yes, : empty-name")

	assert.Len(t, headers, 1)
	assert.Equal(t, "yes", headers.Get("Valid"))
}

func TestParseHeaderSpecEmpty(t *testing.T) {
	assert.Empty(t, ParseHeaderSpec(""))
}

func TestHeadersFromMap(t *testing.T) {
	headers := HeadersFromMap(map[string]string{
		"x-token": "abc",
		"Referer": "https://example.com",
	})

	assert.Equal(t, "abc", headers.Get("X-Token"))
	assert.Equal(t, "https://example.com", headers.Get("Referer"))
	assert.Empty(t, HeadersFromMap(nil))
}

func TestMergeHeadersOverrides(t *testing.T) {
	base := http.Header{}
	base.Set("User-Agent", "default-agent")
	base.Set("Accept", "*/*")

	overrides := http.Header{}
	overrides.Set("User-Agent", "custom-agent")

	merged := MergeHeaders(base, overrides)

	assert.Equal(t, "custom-agent", merged.Get("User-Agent"))
	assert.Equal(t, "*/*", merged.Get("Accept"))
}

func TestMergeHeadersDoesNotMutateInputs(t *testing.T) {
	base := http.Header{}
	base.Set("User-Agent", "default-agent")

	overrides := http.Header{}
	overrides.Set("User-Agent", "custom-agent")

	merged := MergeHeaders(base, overrides)
	merged.Set("User-Agent", "mutated")

	assert.Equal(t, "default-agent", base.Get("User-Agent"))
	assert.Equal(t, "custom-agent", overrides.Get("User-Agent"))
}

func TestProgressFuncAdapter(t *testing.T) {
	var gotCompleted, gotTotal int
	sink := ProgressFunc(func(completed, total int) {
		gotCompleted, gotTotal = completed, total
	})

	sink.Progress(3, 10)
	assert.Equal(t, 3, gotCompleted)
	assert.Equal(t, 10, gotTotal)
}
