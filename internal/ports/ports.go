package ports

import (
	"context"
	"time"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// ProjectStore is the local persistence collaborator. SaveLyrics receives
// the full segment list on every (debounced) mutation; SaveMedia is called
// immediately on attach, independent of the debounce.
type ProjectStore interface {
	SaveLyrics(ctx context.Context, segments []types.LyricSegment) error
	SaveMedia(ctx context.Context, media types.MediaRef) error
	Load(ctx context.Context) (types.ProjectData, bool, error)
	Clear(ctx context.Context) error
}

// MediaTool probes and preprocesses the uploaded audio/video.
type MediaTool interface {
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	ProbeDuration(ctx context.Context, in string) (time.Duration, error)
}

// ASR turns extracted audio into a timed transcript.
type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}

// StyleAdvisor is the generative collaborator. AlignLyrics reshapes a raw
// transcript into lyric segments, optionally guided by user-supplied
// reference text; SuggestStyles proposes per-segment style deltas keyed by
// segment id. Suggestions for unknown ids are ignored by the caller.
type StyleAdvisor interface {
	AlignLyrics(ctx context.Context, tr types.Transcript, referenceText string) ([]types.LyricSegment, error)
	SuggestStyles(ctx context.Context, segments []types.LyricSegment) (map[string]styles.Delta, error)
}
