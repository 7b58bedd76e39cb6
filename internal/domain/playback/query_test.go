package playback

import (
	"testing"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

func mkSeg(id string, start, end float64, anim types.AnimationType) types.LyricSegment {
	st := styles.Default()
	if anim != "" {
		st.Animation = anim
	}
	return types.LyricSegment{ID: id, Text: id, StartTime: start, EndTime: end, Style: st}
}

func activeIDs(segs []types.LyricSegment) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.ID)
	}
	return out
}

func TestActiveSegments_Window(t *testing.T) {
	t.Parallel()

	segs := []types.LyricSegment{mkSeg("a", 10, 12, "")}

	cases := []struct {
		name string
		now  float64
		want int
	}{
		{name: "before start", now: 9.99, want: 0},
		{name: "at start inclusive", now: 10, want: 1},
		{name: "inside", now: 11, want: 1},
		{name: "at end inclusive", now: 12, want: 1},
		{name: "after end", now: 12.01, want: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ActiveSegments(segs, tc.now, 0); len(got) != tc.want {
				t.Fatalf("at %.2f: expected %d active, got %d", tc.now, tc.want, len(got))
			}
		})
	}
}

func TestActiveSegments_GlobalOffset(t *testing.T) {
	t.Parallel()

	// Offset -0.15 shifts [10, 12] to an effective [9.85, 11.85].
	segs := []types.LyricSegment{mkSeg("a", 10, 12, "")}

	if got := ActiveSegments(segs, 9.9, -0.15); len(got) != 1 {
		t.Fatalf("expected active at 9.9 with negative offset, got %d", len(got))
	}
	if got := ActiveSegments(segs, 11.9, -0.15); len(got) != 0 {
		t.Fatalf("expected inactive at 11.9 with negative offset, got %d", len(got))
	}
}

func TestActiveSegments_AnimationLeadIn(t *testing.T) {
	t.Parallel()

	// Slam carries a 0.2s lead-in; fade carries none.
	segs := []types.LyricSegment{
		mkSeg("slam", 10, 12, styles.AnimSlam),
		mkSeg("fade", 10, 12, styles.AnimFade),
	}

	got := ActiveSegments(segs, 9.9, 0)
	if len(got) != 1 || got[0].ID != "slam" {
		t.Fatalf("expected only the slam line active during its lead-in, got %v", activeIDs(got))
	}
	if got := ActiveSegments(segs, 9.75, 0); len(got) != 0 {
		t.Fatalf("expected nothing active before the lead-in, got %v", activeIDs(got))
	}
	// The lead-in widens the front only, not the tail.
	if got := ActiveSegments(segs, 12.1, 0); len(got) != 0 {
		t.Fatalf("expected nothing active past end, got %v", activeIDs(got))
	}
}

func TestActiveSegments_SkipsPendingAndStacksOverlaps(t *testing.T) {
	t.Parallel()

	segs := []types.LyricSegment{
		mkSeg("a", 5, 15, ""),
		mkSeg("b", 10, 20, ""),
		mkSeg("pending", types.PendingTime, types.PendingTime, ""),
	}

	got := ActiveSegments(segs, 12, 0)
	if len(got) != 2 {
		t.Fatalf("expected both overlapping lines active, got %v", activeIDs(got))
	}
}

func TestActiveEffects_UnionWithLegacy(t *testing.T) {
	t.Parallel()

	a := mkSeg("a", 0, 10, "")
	a.Style.Effects = []types.BackgroundEffect{styles.EffectBlur, styles.EffectShake}
	b := mkSeg("b", 0, 10, "")
	b.Style.BackgroundEffect = styles.EffectVHS // legacy single-value field
	c := mkSeg("c", 0, 10, "")
	c.Style.Effects = []types.BackgroundEffect{styles.EffectBlur, "bogus"}

	got := ActiveEffects([]types.LyricSegment{a, b, c})
	want := []types.BackgroundEffect{styles.EffectBlur, styles.EffectShake, styles.EffectVHS}
	if len(got) != len(want) {
		t.Fatalf("expected %d effects, got %v", len(want), got)
	}
	for _, e := range want {
		if _, ok := got[e]; !ok {
			t.Fatalf("missing effect %s in union %v", e, got)
		}
	}
}

func TestQueries_StatelessAndRepeatable(t *testing.T) {
	t.Parallel()

	a := mkSeg("a", 0, 10, "")
	a.Style.Effects = []types.BackgroundEffect{styles.EffectKenBurns}
	segs := []types.LyricSegment{a, mkSeg("b", 20, 30, "")}

	// Repeated calls and backward clock jumps see identical results.
	first := ActiveSegments(segs, 5, 0)
	ActiveSegments(segs, 25, 0)
	second := ActiveSegments(segs, 5, 0)
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("query must be stateless: %v vs %v", activeIDs(first), activeIDs(second))
	}
	e1 := ActiveEffects(first)
	e2 := ActiveEffects(second)
	if len(e1) != 1 || len(e2) != 1 {
		t.Fatalf("effect union must be repeatable: %v vs %v", e1, e2)
	}
}

func TestActiveEffects_EmptyWhenNothingActive(t *testing.T) {
	t.Parallel()

	if got := ActiveEffects(nil); len(got) != 0 {
		t.Fatalf("expected empty union, got %v", got)
	}
}
