// Package playback resolves what is on screen at a playback instant.
// Everything here is a pure function of (segments, clock, offset); seeks,
// backward jumps and repeated calls need no special handling because no call
// depends on the previous one.
package playback

import (
	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// ActiveSegments returns every placed segment whose window covers now.
// globalOffset shifts all segments uniformly to correct sync drift; the
// per-animation lead-in widens the window at the front so impact entrances
// land on the beat. Overlapping lines are all returned — stacked layouts are
// a valid authoring choice.
func ActiveSegments(segments []types.LyricSegment, now, globalOffset float64) []types.LyricSegment {
	var out []types.LyricSegment
	for _, seg := range segments {
		if !seg.Placed() {
			continue
		}
		from := seg.StartTime + globalOffset - styles.LeadIn(seg.Style.Animation)
		to := seg.EndTime + globalOffset
		if now >= from && now <= to {
			out = append(out, seg)
		}
	}
	return out
}

// ActiveEffects is the union of the effective effect sets of all active
// segments. Membership is instantaneous: an effect is gone the moment its
// last contributing segment deactivates.
func ActiveEffects(active []types.LyricSegment) map[types.BackgroundEffect]struct{} {
	out := make(map[types.BackgroundEffect]struct{})
	for _, seg := range active {
		for e := range styles.EffectiveEffects(seg.Style) {
			out[e] = struct{}{}
		}
	}
	return out
}
