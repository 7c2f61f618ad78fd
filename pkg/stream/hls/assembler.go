package hls

import (
	"fmt"
	"sort"
)

// AssemblyError reports the sequence indices that prevent a complete
// assembly, sorted ascending
type AssemblyError struct {
	Missing []int
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly incomplete: missing segments %v", e.Missing)
}

// Assemble reconstructs the ordered byte stream from segment results.
// It is a pure projection keyed on Sequence: arrival order never matters,
// only that every index in [0, N) carries a successful payload. Any
// missing or failed index yields an AssemblyError naming exactly the
// offending indices.
func Assemble(results []SegmentResult) (*AssembledStream, error) {
	n := len(results)
	chunks := make([][]byte, n)
	seen := make([]bool, n)

	for _, result := range results {
		if result.Sequence < 0 || result.Sequence >= n {
			continue
		}
		if result.OK() {
			chunks[result.Sequence] = result.Data
			seen[result.Sequence] = true
		}
	}

	var missing []int
	for i := range n {
		if !seen[i] {
			missing = append(missing, i)
		}
	}

	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &AssemblyError{Missing: missing}
	}

	return &AssembledStream{Chunks: chunks}, nil
}
