package timeline

import (
	"sort"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// ApplyStyle merges delta into the style of every targeted segment.
// A nil targetIDs means every segment; an empty non-nil slice is an explicit
// no-op. Unknown ids are skipped without aborting the rest.
func (s *Store) ApplyStyle(delta styles.Delta, targetIDs []string) {
	if targetIDs != nil && len(targetIDs) == 0 {
		return
	}
	var want map[string]struct{}
	if targetIDs != nil {
		want = make(map[string]struct{}, len(targetIDs))
		for _, id := range targetIDs {
			want[id] = struct{}{}
		}
	}

	s.mu.Lock()
	touched := false
	for i := range s.segments {
		if want != nil {
			if _, ok := want[s.segments[i].ID]; !ok {
				continue
			}
		}
		s.segments[i].Style = styles.Apply(s.segments[i].Style, delta)
		touched = true
	}
	if !touched {
		s.mu.Unlock()
		return
	}
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
}

// ToggleEffect flips membership of effect in the segment's effective effect
// set and writes the result back in the current schema. Going through the
// effective set (not the raw array) keeps a legacy-only segment from losing
// its legacy effect when a new one is toggled on.
func (s *Store) ToggleEffect(id string, effect types.BackgroundEffect) error {
	if !styles.ValidEffect(effect) {
		// Unknown effects cannot be toggled; treat as a no-op rather than
		// corrupting the set.
		return nil
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	set := styles.EffectiveEffects(s.segments[i].Style)
	if _, on := set[effect]; on {
		delete(set, effect)
	} else {
		set[effect] = struct{}{}
	}

	merged := make([]types.BackgroundEffect, 0, len(set))
	for e := range set {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(a, b int) bool { return merged[a] < merged[b] })

	s.segments[i].Style.Effects = merged
	s.segments[i].Style.BackgroundEffect = styles.EffectNone

	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
	return nil
}
