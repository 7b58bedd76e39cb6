package styles

import "github.com/ksenko/lyrstage/internal/types"

// EffectNone is the legacy "no background effect" sentinel. It never appears
// in an effect set.
const EffectNone types.BackgroundEffect = "none"

// Background effects, grouped by the treatment they apply to the backdrop.
// The grouping matters to renderers only; the core treats all of them alike.
const (
	// motion
	EffectKenBurns types.BackgroundEffect = "ken-burns"
	EffectPanLeft  types.BackgroundEffect = "pan-left"
	EffectPanRight types.BackgroundEffect = "pan-right"
	EffectZoomIn   types.BackgroundEffect = "zoom-in"
	EffectZoomOut  types.BackgroundEffect = "zoom-out"
	EffectDrift    types.BackgroundEffect = "drift"
	EffectSpin     types.BackgroundEffect = "spin"
	EffectParallax types.BackgroundEffect = "parallax"

	// filter
	EffectBlur      types.BackgroundEffect = "blur"
	EffectVignette  types.BackgroundEffect = "vignette"
	EffectGrayscale types.BackgroundEffect = "grayscale"
	EffectSepia     types.BackgroundEffect = "sepia"
	EffectInvert    types.BackgroundEffect = "invert"
	EffectVHS       types.BackgroundEffect = "vhs"
	EffectFilmGrain types.BackgroundEffect = "film-grain"
	EffectChromatic types.BackgroundEffect = "chromatic"
	EffectGlow      types.BackgroundEffect = "glow"
	EffectPosterize types.BackgroundEffect = "posterize"

	// chaos
	EffectShake    types.BackgroundEffect = "shake"
	EffectStrobe   types.BackgroundEffect = "strobe"
	EffectGlitch   types.BackgroundEffect = "glitch"
	EffectFlicker  types.BackgroundEffect = "flicker"
	EffectPixelate types.BackgroundEffect = "pixelate"
	EffectStatic   types.BackgroundEffect = "static"
	EffectWarp     types.BackgroundEffect = "warp"
)

type EffectCategory string

const (
	CategoryMotion EffectCategory = "motion"
	CategoryFilter EffectCategory = "filter"
	CategoryChaos  EffectCategory = "chaos"
)

var effectCategories = map[types.BackgroundEffect]EffectCategory{
	EffectKenBurns: CategoryMotion, EffectPanLeft: CategoryMotion, EffectPanRight: CategoryMotion,
	EffectZoomIn: CategoryMotion, EffectZoomOut: CategoryMotion, EffectDrift: CategoryMotion,
	EffectSpin: CategoryMotion, EffectParallax: CategoryMotion,

	EffectBlur: CategoryFilter, EffectVignette: CategoryFilter, EffectGrayscale: CategoryFilter,
	EffectSepia: CategoryFilter, EffectInvert: CategoryFilter, EffectVHS: CategoryFilter,
	EffectFilmGrain: CategoryFilter, EffectChromatic: CategoryFilter, EffectGlow: CategoryFilter,
	EffectPosterize: CategoryFilter,

	EffectShake: CategoryChaos, EffectStrobe: CategoryChaos, EffectGlitch: CategoryChaos,
	EffectFlicker: CategoryChaos, EffectPixelate: CategoryChaos, EffectStatic: CategoryChaos,
	EffectWarp: CategoryChaos,
}

func ValidEffect(e types.BackgroundEffect) bool {
	_, ok := effectCategories[e]
	return ok
}

// Category reports which treatment group an effect belongs to.
func Category(e types.BackgroundEffect) (EffectCategory, bool) {
	c, ok := effectCategories[e]
	return c, ok
}

// ParseEffect maps arbitrary input onto the closed set; anything unknown
// reads as EffectNone so lossy imports degrade instead of failing.
func ParseEffect(s string) types.BackgroundEffect {
	if ValidEffect(types.BackgroundEffect(s)) {
		return types.BackgroundEffect(s)
	}
	return EffectNone
}

// EffectiveEffects resolves the schema migration on the read side: the
// Effects array unioned with a non-none legacy BackgroundEffect. Unknown
// names and the none sentinel contribute nothing.
func EffectiveEffects(st types.LyricStyle) map[types.BackgroundEffect]struct{} {
	out := make(map[types.BackgroundEffect]struct{}, len(st.Effects)+1)
	for _, e := range st.Effects {
		if ValidEffect(e) {
			out[e] = struct{}{}
		}
	}
	if st.BackgroundEffect != "" && st.BackgroundEffect != EffectNone && ValidEffect(st.BackgroundEffect) {
		out[st.BackgroundEffect] = struct{}{}
	}
	return out
}
