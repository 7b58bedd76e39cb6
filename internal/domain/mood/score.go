package mood

import (
	"regexp"
	"strings"
)

var (
	reEnergy = regexp.MustCompile(`(?i)\b(fire|burn|run|jump|dance|loud|scream|shout|wild|crazy|fight|alive|tonight|party|higher|faster)\b`)
	reCalm   = regexp.MustCompile(`(?i)\b(slow|soft|quiet|sleep|dream|gentle|still|fade|whisper|rain|moon|lonely|cold|tears|goodbye|drift)\b`)
	reShout  = regexp.MustCompile(`\p{Lu}{3,}`)
)

// Score returns (energy, calm) in range [0..10] for one lyric line.
// Deterministic and cheap on purpose: it is the offline stand-in for the
// style advisor, so two runs over the same lyrics must style them the same.
func Score(text string) (float64, float64) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, 0
	}
	lower := strings.ToLower(t)

	energy := float64(len(reEnergy.FindAllStringIndex(lower, -1))) * 1.4
	energy += float64(strings.Count(t, "!")) * 1.1
	// Shouted words ("YEAH", "GO GO GO") read as energy even without keywords.
	energy += float64(len(reShout.FindAllStringIndex(t, -1))) * 0.8

	calm := float64(len(reCalm.FindAllStringIndex(lower, -1))) * 1.4
	calm += float64(strings.Count(t, "...")) * 0.9
	// small length bonus: long flowing lines lean calm
	calm += 0.01 * float64(len([]rune(t)))

	return clamp(energy, 0, 10), clamp(calm, 0, 10)
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
