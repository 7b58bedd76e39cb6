package timeline

import (
	"regexp"
	"strings"
)

var (
	// Section markers like [Chorus], (Verse 2) or 【間奏】 are structure, not
	// lyrics; they never become segments.
	sectionMarkerRE = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|【[^】]*】`)

	// Decorative dashes some lyric sites pad lines with.
	dashGlyphs = strings.NewReplacer("—", "", "–", "", "―", "")
)

// CleanLyricLine strips structural noise from one reference-lyrics line.
func CleanLyricLine(line string) string {
	line = sectionMarkerRE.ReplaceAllString(line, "")
	line = dashGlyphs.Replace(line)
	return strings.TrimSpace(line)
}

// SplitLyricLines turns raw multi-line reference text into one cleaned,
// non-empty entry per lyric line, in input order.
func SplitLyricLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if cleaned := CleanLyricLine(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
