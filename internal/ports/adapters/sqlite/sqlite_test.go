package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "project.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_EmptyProject(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	_, ok, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("fresh db must report no saved project")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()

	styled := styles.Default()
	styled.Effects = []types.BackgroundEffect{styles.EffectVignette}
	segs := []types.LyricSegment{
		{ID: "a", Text: "first", StartTime: 1, EndTime: 4, Style: styled},
		{ID: "p", Text: "queued", StartTime: types.PendingTime, EndTime: types.PendingTime, Style: styles.Default()},
	}
	if err := s.SaveLyrics(ctx, segs); err != nil {
		t.Fatalf("save lyrics: %v", err)
	}
	if err := s.SaveMedia(ctx, types.MediaRef{Path: "song.mp3", Kind: "audio"}); err != nil {
		t.Fatalf("save media: %v", err)
	}

	data, ok, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected saved project reported")
	}
	if len(data.Segments) != 2 || data.Segments[0].ID != "a" || data.Segments[1].ID != "p" {
		t.Fatalf("stored order lost: %+v", data.Segments)
	}
	if data.Segments[1].StartTime != types.PendingTime {
		t.Fatalf("pending sentinel lost: %v", data.Segments[1].StartTime)
	}
	if len(data.Segments[0].Style.Effects) != 1 || data.Segments[0].Style.Effects[0] != styles.EffectVignette {
		t.Fatalf("style json lost: %+v", data.Segments[0].Style)
	}
	if data.Media == nil || data.Media.Path != "song.mp3" || data.Media.Kind != "audio" {
		t.Fatalf("media ref lost: %+v", data.Media)
	}
}

func TestSaveLyrics_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()

	first := []types.LyricSegment{
		{ID: "a", Text: "one", StartTime: 0, EndTime: 2, Style: styles.Default()},
		{ID: "b", Text: "two", StartTime: 3, EndTime: 5, Style: styles.Default()},
	}
	if err := s.SaveLyrics(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := []types.LyricSegment{
		{ID: "c", Text: "only", StartTime: 1, EndTime: 4, Style: styles.Default()},
	}
	if err := s.SaveLyrics(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Segments) != 1 || data.Segments[0].ID != "c" {
		t.Fatalf("expected wholesale replacement, got %+v", data.Segments)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()

	if err := s.SaveLyrics(ctx, []types.LyricSegment{
		{ID: "a", Text: "one", StartTime: 0, EndTime: 2, Style: styles.Default()},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveMedia(ctx, types.MediaRef{Path: "x.mp3", Kind: "audio"}); err != nil {
		t.Fatalf("save media: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, ok, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("cleared project must read as absent")
	}
}

func TestSaveMedia_Overwrites(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()

	if err := s.SaveMedia(ctx, types.MediaRef{Path: "old.mp3", Kind: "audio"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveMedia(ctx, types.MediaRef{Path: "new.mp4", Kind: "video"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Media == nil || data.Media.Path != "new.mp4" || data.Media.Kind != "video" {
		t.Fatalf("expected single overwritten media row, got %+v", data.Media)
	}
}
