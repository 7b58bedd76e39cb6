package timeline

import (
	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// DefaultPlaceDuration is the editable window a tap creates when the user
// has not set an end time yet.
const DefaultPlaceDuration = 3.0

// PlaceOptions carries the optional parts of a placement. Zero value means
// "place the head of the pending queue at the clock time for the default
// duration" — the plain tap gesture.
type PlaceOptions struct {
	// Text selects the pending segment to convert; empty takes the head of
	// the queue. When no pending segment matches, a new segment is created
	// with this text.
	Text string

	// Start and End override the clock time and the default duration.
	Start *float64
	End   *float64

	// Duration replaces DefaultPlaceDuration when End is not given.
	// Non-positive means default.
	Duration float64
}

// PlaceNext converts the next piece of text into a placed segment at the
// given playback time. The latest-start placed segment gets its end trimmed
// down to the new start when they would overlap ("tap closes the previous
// line"); earlier segments are deliberately left alone. Safe to call at tap
// rate — every call is one independent placement.
func (s *Store) PlaceNext(now float64, opts PlaceOptions) types.LyricSegment {
	start := now
	if opts.Start != nil {
		start = *opts.Start
	}
	dur := opts.Duration
	if dur <= 0 {
		dur = DefaultPlaceDuration
	}
	end := start + dur
	if opts.End != nil {
		end = *opts.End
	}

	s.mu.Lock()

	// Head pending segment: first in queue order, optionally matched by text.
	target := -1
	for i := range s.segments {
		if !s.segments[i].Pending() {
			continue
		}
		if opts.Text == "" || s.segments[i].Text == opts.Text {
			target = i
			break
		}
	}

	s.trimPredecessorLocked(start)

	var placed types.LyricSegment
	if target >= 0 {
		s.segments[target].StartTime = start
		s.segments[target].EndTime = end
		placed = s.segments[target]
	} else {
		placed = types.LyricSegment{
			ID:        NewID(),
			Text:      opts.Text,
			StartTime: start,
			EndTime:   end,
			Style:     styles.Default(),
		}
		s.segments = append(s.segments, placed)
	}

	s.resortLocked()
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
	return placed
}

// trimPredecessorLocked closes the current last-placed line at the new start
// time. Only the single latest-start segment is considered; overlaps created
// by out-of-order manual edits are the user's to resolve.
func (s *Store) trimPredecessorLocked(start float64) {
	last := -1
	for i := range s.segments {
		if !s.segments[i].Placed() {
			continue
		}
		if last < 0 || s.segments[i].StartTime > s.segments[last].StartTime {
			last = i
		}
	}
	if last >= 0 && s.segments[last].EndTime > start {
		s.segments[last].EndTime = start
	}
}

// EnqueueFromText replaces the pending queue with one pending segment per
// cleaned line of raw reference text. Placed segments are untouched.
func (s *Store) EnqueueFromText(raw string) {
	lines := SplitLyricLines(raw)

	s.mu.Lock()
	kept := s.segments[:0]
	for _, seg := range s.segments {
		if seg.Placed() {
			kept = append(kept, seg)
		}
	}
	s.segments = kept
	for _, line := range lines {
		s.segments = append(s.segments, types.LyricSegment{
			ID:        NewID(),
			Text:      line,
			StartTime: types.PendingTime,
			EndTime:   types.PendingTime,
			Style:     styles.Default(),
		})
	}
	s.resortLocked()
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
}
