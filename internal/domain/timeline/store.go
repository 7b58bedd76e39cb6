package timeline

import (
	"errors"
	"sort"
	"sync"

	"github.com/ksenko/lyrstage/internal/types"
)

var ErrNotFound = errors.New("segment not found")

// Store holds the authoritative segment collection: placed lines followed by
// the pending FIFO queue. All mutations go through its methods; each one
// re-establishes the canonical order and reports a snapshot to OnChange so
// the persistence layer can debounce saves without reaching into the store.
type Store struct {
	mu       sync.Mutex
	segments []types.LyricSegment
	onChange func([]types.LyricSegment)
}

func NewStore() *Store {
	return &Store{}
}

// SetOnChange registers the mutation listener. The callback receives a copy
// and runs on the mutating goroutine, after the lock is released.
func (s *Store) SetOnChange(fn func([]types.LyricSegment)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Add appends a segment. ID uniqueness is the caller's contract; the id
// generator in this package satisfies it.
func (s *Store) Add(seg types.LyricSegment) {
	s.mu.Lock()
	s.segments = append(s.segments, seg)
	s.resortLocked()
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
}

// Update hands the matching segment to mutate. Ids are unique by
// construction, so at most one segment matches.
func (s *Store) Update(id string, mutate func(*types.LyricSegment)) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	mutate(&s.segments[i])
	s.resortLocked()
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
	return nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.segments = append(s.segments[:i], s.segments[i+1:]...)
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
	return nil
}

// Clear empties the whole collection, placed and pending alike.
func (s *Store) Clear() {
	s.mu.Lock()
	s.segments = nil
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
}

// Replace swaps in a whole new list, used for restore-accepted and for
// AI-generated timelines.
func (s *Store) Replace(segs []types.LyricSegment) {
	s.mu.Lock()
	s.segments = append([]types.LyricSegment(nil), segs...)
	s.resortLocked()
	snap, fn := s.snapshotLocked()
	s.mu.Unlock()
	notify(fn, snap)
}

// Segments returns a copy of the canonical ordering.
func (s *Store) Segments() []types.LyricSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySegments(s.segments)
}

// Get returns the segment with the given id.
func (s *Store) Get(id string) (types.LyricSegment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.segments[i], true
	}
	return types.LyricSegment{}, false
}

// Partition splits the collection into placed segments (ascending by start
// time) and pending segments (queue order).
func (s *Store) Partition() (placed, pending []types.LyricSegment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seg := range s.segments {
		if seg.Placed() {
			placed = append(placed, seg)
		} else {
			pending = append(pending, seg)
		}
	}
	return placed, pending
}

func (s *Store) indexLocked(id string) int {
	for i := range s.segments {
		if s.segments[i].ID == id {
			return i
		}
	}
	return -1
}

// resortLocked restores the canonical order: placed before pending, placed
// ascending by start time, pending keeping its relative (queue) order.
func (s *Store) resortLocked() {
	sort.SliceStable(s.segments, func(i, j int) bool {
		a, b := s.segments[i], s.segments[j]
		switch {
		case a.Placed() && !b.Placed():
			return true
		case !a.Placed() && b.Placed():
			return false
		case a.Placed() && b.Placed():
			return a.StartTime < b.StartTime
		default:
			return false
		}
	})
}

func (s *Store) snapshotLocked() ([]types.LyricSegment, func([]types.LyricSegment)) {
	if s.onChange == nil {
		return nil, nil
	}
	return copySegments(s.segments), s.onChange
}

func notify(fn func([]types.LyricSegment), snap []types.LyricSegment) {
	if fn != nil {
		fn(snap)
	}
}

func copySegments(in []types.LyricSegment) []types.LyricSegment {
	out := make([]types.LyricSegment, len(in))
	copy(out, in)
	return out
}
