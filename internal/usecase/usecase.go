package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ksenko/lyrstage/internal/domain/playback"
	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/domain/timeline"
	"github.com/ksenko/lyrstage/internal/ports"
	"github.com/ksenko/lyrstage/internal/types"
)

type Deps struct {
	Project ports.ProjectStore
	Media   ports.MediaTool
	ASR     ports.ASR
	Advisor ports.StyleAdvisor
}

type Options struct {
	// GlobalOffset (seconds, may be negative) corrects sync drift for every
	// cue query.
	GlobalOffset float64

	// PlaceDuration is the initial window of a tapped-in segment; zero means
	// the timeline default.
	PlaceDuration float64

	// AutosaveDelay is the debounce between the last store mutation and the
	// persistence write.
	AutosaveDelay time.Duration

	CacheDir string
	Logf     func(format string, args ...any)
}

// Session ties the segment store to its collaborators for one authoring
// session: debounced persistence on every mutation, media attach/restore,
// and the two AI flows.
type Session struct {
	store *timeline.Store
	d     Deps
	opt   Options

	mu      sync.Mutex
	timer   *time.Timer
	unsaved []types.LyricSegment
	dirty   bool
}

func New(d Deps, opt Options) *Session {
	if opt.Logf == nil {
		opt.Logf = func(string, ...any) {}
	}
	if opt.AutosaveDelay <= 0 {
		opt.AutosaveDelay = time.Second
	}
	if opt.CacheDir == "" {
		opt.CacheDir = ".cache"
	}
	s := &Session{store: timeline.NewStore(), d: d, opt: opt}
	s.store.SetOnChange(s.scheduleSave)
	return s
}

// Store exposes the segment store; all timeline mutations go through it.
func (s *Session) Store() *timeline.Store { return s.store }

// scheduleSave keeps only the latest snapshot and (re)arms the debounce
// timer. Tap-rate mutation bursts collapse into one write.
func (s *Session) scheduleSave(snapshot []types.LyricSegment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsaved = snapshot
	s.dirty = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.opt.AutosaveDelay, func() {
			if err := s.Flush(context.Background()); err != nil {
				s.opt.Logf("autosave: %v", err)
			}
		})
		return
	}
	s.timer.Reset(s.opt.AutosaveDelay)
}

// Flush writes the latest unsaved snapshot now. Safe to call with nothing
// pending; used on shutdown so the debounce never loses the tail edit.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.unsaved
	s.dirty = false
	s.mu.Unlock()

	if s.d.Project == nil {
		return nil
	}
	return s.d.Project.SaveLyrics(ctx, snapshot)
}

// Restore reads the last-saved project without touching the store; the
// caller confirms with AcceptRestore or discards by doing nothing.
func (s *Session) Restore(ctx context.Context) (types.ProjectData, bool, error) {
	if s.d.Project == nil {
		return types.ProjectData{}, false, nil
	}
	return s.d.Project.Load(ctx)
}

// AcceptRestore replaces the store wholesale with the restored project.
func (s *Session) AcceptRestore(data types.ProjectData) {
	s.store.Replace(data.Segments)
}

// AttachMedia saves the media reference immediately (not debounced) and
// returns its duration.
func (s *Session) AttachMedia(ctx context.Context, path, kind string) (time.Duration, error) {
	var dur time.Duration
	if s.d.Media != nil {
		d, err := s.d.Media.ProbeDuration(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("probe media: %w", err)
		}
		dur = d
	}
	if s.d.Project != nil {
		if err := s.d.Project.SaveMedia(ctx, types.MediaRef{Path: path, Kind: kind}); err != nil {
			return 0, fmt.Errorf("save media: %w", err)
		}
	}
	return dur, nil
}

// TranscribeMedia runs the full AI authoring flow: extract audio, transcribe,
// shape into lyric lines (guided by optional reference text), normalize the
// generated timeline and replace the store with it.
func (s *Session) TranscribeMedia(ctx context.Context, mediaPath, referenceText string) ([]types.LyricSegment, error) {
	if s.d.Media == nil || s.d.ASR == nil {
		return nil, fmt.Errorf("transcription requires media and ASR tools")
	}
	if err := os.MkdirAll(s.opt.CacheDir, 0o755); err != nil {
		return nil, err
	}

	wav := filepath.Join(s.opt.CacheDir, "audio.wav")
	s.opt.Logf("extracting audio: %s", mediaPath)
	if err := s.d.Media.ExtractAudioMono16k(ctx, mediaPath, wav); err != nil {
		return nil, err
	}

	s.opt.Logf("transcribing")
	tr, err := s.d.ASR.Transcribe(ctx, wav, s.opt.CacheDir)
	if err != nil {
		return nil, err
	}

	var segs []types.LyricSegment
	if s.d.Advisor != nil {
		segs, err = s.d.Advisor.AlignLyrics(ctx, tr, referenceText)
		if err != nil {
			return nil, err
		}
	} else {
		segs = verbatimSegments(tr)
	}

	segs = timeline.NormalizeGenerated(segs)
	s.store.Replace(segs)
	s.opt.Logf("timeline replaced: %d segments", len(segs))
	return segs, nil
}

// SuggestStyles asks the advisor for per-line styles and applies them.
// Suggestions for ids no longer in the store are dropped silently.
func (s *Session) SuggestStyles(ctx context.Context) (int, error) {
	if s.d.Advisor == nil {
		return 0, fmt.Errorf("no style advisor configured")
	}
	placed, _ := s.store.Partition()
	if len(placed) == 0 {
		return 0, nil
	}
	suggestions, err := s.d.Advisor.SuggestStyles(ctx, placed)
	if err != nil {
		return 0, err
	}
	timeline.ApplySuggestions(s.store, suggestions)
	return len(suggestions), nil
}

// Cue is what the render layer consumes on every clock tick.
type Cue struct {
	Segments []types.LyricSegment
	Effects  map[types.BackgroundEffect]struct{}
}

// CueAt resolves the active segments and effect union at a playback time,
// honoring the session's global offset.
func (s *Session) CueAt(now float64) Cue {
	active := playback.ActiveSegments(s.store.Segments(), now, s.opt.GlobalOffset)
	return Cue{Segments: active, Effects: playback.ActiveEffects(active)}
}

// PlaceNext places the next lyric line at the given playback time, applying
// the session's default duration.
func (s *Session) PlaceNext(now float64, opts timeline.PlaceOptions) types.LyricSegment {
	if opts.Duration <= 0 {
		opts.Duration = s.opt.PlaceDuration
	}
	return s.store.PlaceNext(now, opts)
}

// ClearProject wipes both the store and the persisted project.
func (s *Session) ClearProject(ctx context.Context) error {
	s.store.Clear()
	if s.d.Project == nil {
		return nil
	}
	if err := s.d.Project.Clear(ctx); err != nil {
		return err
	}
	// The debounced save would immediately re-write the (now empty) list;
	// flush it so the on-disk state settles before the command exits.
	return s.Flush(ctx)
}

func verbatimSegments(tr types.Transcript) []types.LyricSegment {
	out := make([]types.LyricSegment, 0, len(tr.Segments))
	for _, seg := range tr.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		out = append(out, types.LyricSegment{
			ID:        timeline.NewID(),
			Text:      text,
			StartTime: seg.Start,
			EndTime:   seg.End,
			Style:     styles.Default(),
		})
	}
	return out
}
