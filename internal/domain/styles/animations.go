package styles

import "github.com/ksenko/lyrstage/internal/types"

// Entrance animations. The set is closed: renderers key keyframes off these
// names and unknown values fall back to AnimSlideUp.
const (
	AnimSlideUp    types.AnimationType = "slide-up"
	AnimSlideDown  types.AnimationType = "slide-down"
	AnimSlideLeft  types.AnimationType = "slide-left"
	AnimSlideRight types.AnimationType = "slide-right"
	AnimFade       types.AnimationType = "fade"
	AnimFadeUp     types.AnimationType = "fade-up"
	AnimFadeDown   types.AnimationType = "fade-down"
	AnimZoomIn     types.AnimationType = "zoom-in"
	AnimZoomOut    types.AnimationType = "zoom-out"
	AnimTypewriter types.AnimationType = "typewriter"
	AnimWave       types.AnimationType = "wave"
	AnimBlurIn     types.AnimationType = "blur-in"
	AnimRotateIn   types.AnimationType = "rotate-in"
	AnimFlipX      types.AnimationType = "flip-x"
	AnimFlipY      types.AnimationType = "flip-y"
	AnimStretch    types.AnimationType = "stretch"
	AnimSqueeze    types.AnimationType = "squeeze"
	AnimGlitch     types.AnimationType = "glitch"
	AnimNeon       types.AnimationType = "neon"
	AnimRainbow    types.AnimationType = "rainbow"
	AnimShiver     types.AnimationType = "shiver"
	AnimFloat      types.AnimationType = "float"
	AnimSwing      types.AnimationType = "swing"
	AnimHeartbeat  types.AnimationType = "heartbeat"
	AnimSparkle    types.AnimationType = "sparkle"
	AnimPop        types.AnimationType = "pop"
	AnimBounce     types.AnimationType = "bounce"
	AnimSlam       types.AnimationType = "slam"
	AnimPunch      types.AnimationType = "punch"
	AnimFlash      types.AnimationType = "flash"
)

var animations = map[types.AnimationType]struct{}{
	AnimSlideUp: {}, AnimSlideDown: {}, AnimSlideLeft: {}, AnimSlideRight: {},
	AnimFade: {}, AnimFadeUp: {}, AnimFadeDown: {}, AnimZoomIn: {}, AnimZoomOut: {},
	AnimTypewriter: {}, AnimWave: {}, AnimBlurIn: {}, AnimRotateIn: {}, AnimFlipX: {},
	AnimFlipY: {}, AnimStretch: {}, AnimSqueeze: {}, AnimGlitch: {}, AnimNeon: {},
	AnimRainbow: {}, AnimShiver: {}, AnimFloat: {}, AnimSwing: {}, AnimHeartbeat: {},
	AnimSparkle: {}, AnimPop: {}, AnimBounce: {}, AnimSlam: {}, AnimPunch: {},
	AnimFlash: {},
}

// leadIns holds the per-animation activation lead, in seconds. Impact-style
// entrances start slightly early so the hit lands on the intended beat.
// Everything absent from the table reads as zero.
var leadIns = map[types.AnimationType]float64{
	AnimSlam:   0.2,
	AnimPunch:  0.15,
	AnimPop:    0.1,
	AnimBounce: 0.1,
	AnimFlash:  0.05,
}

// LeadIn returns the activation lead for an animation. Unknown names get
// zero rather than an error: machine-generated styles must not stall playback.
func LeadIn(a types.AnimationType) float64 {
	return leadIns[a]
}

func ValidAnimation(a types.AnimationType) bool {
	_, ok := animations[a]
	return ok
}

// ParseAnimation maps arbitrary input onto the closed set, falling back to
// the default entrance.
func ParseAnimation(s string) types.AnimationType {
	if ValidAnimation(types.AnimationType(s)) {
		return types.AnimationType(s)
	}
	return AnimSlideUp
}
