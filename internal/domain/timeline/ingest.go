package timeline

import (
	"sort"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// NormalizeGenerated post-processes an AI-generated timeline before it enters
// the store: sort by start time, drop zero/negative-length segments, and trim
// each end down to the following start — the batch form of the tap rule.
// This silent dropping is reserved for machine output; interactive edits keep
// bad windows visible for the user to fix.
func NormalizeGenerated(segs []types.LyricSegment) []types.LyricSegment {
	sorted := make([]types.LyricSegment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	out := sorted[:0]
	for _, seg := range sorted {
		if seg.EndTime <= seg.StartTime {
			continue
		}
		if seg.ID == "" {
			seg.ID = NewID()
		}
		out = append(out, seg)
	}

	for i := 0; i+1 < len(out); i++ {
		if out[i].EndTime > out[i+1].StartTime {
			out[i].EndTime = out[i+1].StartTime
		}
	}
	return out
}

// ApplySuggestions applies per-segment style suggestions through the
// resolver. Suggestions for ids not in the store are ignored.
func ApplySuggestions(s *Store, suggestions map[string]styles.Delta) {
	for id, delta := range suggestions {
		if delta.IsZero() {
			continue
		}
		s.ApplyStyle(delta, []string{id})
	}
}
