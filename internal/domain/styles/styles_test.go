package styles

import (
	"reflect"
	"testing"

	"github.com/ksenko/lyrstage/internal/types"
)

func TestParseFallbacks(t *testing.T) {
	t.Parallel()

	if got := ParseAnimation("slam"); got != AnimSlam {
		t.Fatalf("ParseAnimation(slam) = %s", got)
	}
	if got := ParseAnimation("hologram"); got != AnimSlideUp {
		t.Fatalf("unknown animation must fall back to slide-up, got %s", got)
	}
	if got := ParseEffect("vhs"); got != EffectVHS {
		t.Fatalf("ParseEffect(vhs) = %s", got)
	}
	if got := ParseEffect("lens-flare"); got != EffectNone {
		t.Fatalf("unknown effect must fall back to none, got %s", got)
	}
	if got := ParseFontSize("2xl"); got != Size2XL {
		t.Fatalf("ParseFontSize(2xl) = %s", got)
	}
	if got := ParseFontSize("17pt"); got != Size4XL {
		t.Fatalf("unknown size must fall back to 4xl, got %s", got)
	}
	if got := ParsePosition("bottom"); got != PositionBottom {
		t.Fatalf("ParsePosition(bottom) = %s", got)
	}
	if got := ParsePosition("middle"); got != PositionCenter {
		t.Fatalf("unknown position must fall back to center, got %s", got)
	}
	if got := ParseFontFamily("gothic"); got != FontGothic {
		t.Fatalf("ParseFontFamily(gothic) = %s", got)
	}
	if got := ParseFontFamily("comic-sans"); got != FontDisplay {
		t.Fatalf("unknown family must fall back to display, got %s", got)
	}
}

func TestLeadIn(t *testing.T) {
	t.Parallel()

	if got := LeadIn(AnimSlam); got != 0.2 {
		t.Fatalf("LeadIn(slam) = %v", got)
	}
	if got := LeadIn(AnimFade); got != 0 {
		t.Fatalf("non-impact animation must have zero lead-in, got %v", got)
	}
	if got := LeadIn("made-up"); got != 0 {
		t.Fatalf("unknown animation must have zero lead-in, got %v", got)
	}
}

func TestEffectiveEffects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		st   types.LyricStyle
		want []types.BackgroundEffect
	}{
		{
			name: "array only",
			st:   types.LyricStyle{Effects: []types.BackgroundEffect{EffectBlur, EffectShake}},
			want: []types.BackgroundEffect{EffectBlur, EffectShake},
		},
		{
			name: "legacy only",
			st:   types.LyricStyle{BackgroundEffect: EffectVHS},
			want: []types.BackgroundEffect{EffectVHS},
		},
		{
			name: "legacy unioned with array",
			st: types.LyricStyle{
				Effects:          []types.BackgroundEffect{EffectBlur},
				BackgroundEffect: EffectVHS,
			},
			want: []types.BackgroundEffect{EffectBlur, EffectVHS},
		},
		{
			name: "none sentinel contributes nothing",
			st:   types.LyricStyle{BackgroundEffect: EffectNone},
			want: nil,
		},
		{
			name: "unknown names dropped",
			st: types.LyricStyle{
				Effects:          []types.BackgroundEffect{"bogus", EffectGlow},
				BackgroundEffect: "also-bogus",
			},
			want: []types.BackgroundEffect{EffectGlow},
		},
		{
			name: "duplicate across both fields",
			st: types.LyricStyle{
				Effects:          []types.BackgroundEffect{EffectVHS},
				BackgroundEffect: EffectVHS,
			},
			want: []types.BackgroundEffect{EffectVHS},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := EffectiveEffects(tc.st)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d effects, got %v", len(tc.want), got)
			}
			for _, e := range tc.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("missing %s in %v", e, got)
				}
			}
		})
	}
}

func TestCategory(t *testing.T) {
	t.Parallel()

	if c, ok := Category(EffectKenBurns); !ok || c != CategoryMotion {
		t.Fatalf("Category(ken-burns) = %s, %v", c, ok)
	}
	if c, ok := Category(EffectStrobe); !ok || c != CategoryChaos {
		t.Fatalf("Category(strobe) = %s, %v", c, ok)
	}
	if _, ok := Category("bogus"); ok {
		t.Fatalf("unknown effect must have no category")
	}
}

func TestDeltaApply(t *testing.T) {
	t.Parallel()

	base := Default()
	base.BackgroundEffect = EffectVHS

	anim := AnimGlitch
	color := "#00FF00"
	got := Apply(base, Delta{Animation: &anim, Color: &color})
	if got.Animation != AnimGlitch || got.Color != "#00FF00" {
		t.Fatalf("pointer fields not applied: %+v", got)
	}
	if got.FontSize != Size4XL || got.Position != PositionCenter {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.BackgroundEffect != EffectVHS {
		t.Fatalf("legacy field must survive when effects are untouched, got %s", got.BackgroundEffect)
	}

	// Writing effects retires the legacy field.
	got = Apply(base, Delta{Effects: []types.BackgroundEffect{EffectBlur}})
	if got.BackgroundEffect != EffectNone {
		t.Fatalf("effects write must reset legacy field, got %s", got.BackgroundEffect)
	}
	if !reflect.DeepEqual(got.Effects, []types.BackgroundEffect{EffectBlur}) {
		t.Fatalf("unexpected effects: %v", got.Effects)
	}

	// An empty non-nil slice clears the set.
	got = Apply(got, Delta{Effects: []types.BackgroundEffect{}})
	if len(got.Effects) != 0 {
		t.Fatalf("empty effects slice must clear, got %v", got.Effects)
	}
}

func TestDeltaIsZero(t *testing.T) {
	t.Parallel()

	if !(Delta{}).IsZero() {
		t.Fatalf("empty delta must be zero")
	}
	v := true
	if (Delta{Vertical: &v}).IsZero() {
		t.Fatalf("delta with a field set must not be zero")
	}
	if (Delta{Effects: []types.BackgroundEffect{}}).IsZero() {
		t.Fatalf("non-nil empty effects slice is a change (clear), not zero")
	}
}
