// Package export renders the authored timeline in interchange formats.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ksenko/lyrstage/internal/types"
)

// Format names accepted by Render.
const (
	FormatLRC  = "lrc"
	FormatASS  = "ass"
	FormatJSON = "json"
)

// Render dispatches on format name.
func Render(format string, segments []types.LyricSegment, globalOffset float64) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatLRC:
		return RenderLRC(segments, globalOffset), nil
	case FormatASS:
		return RenderASS(segments, globalOffset), nil
	case FormatJSON:
		return RenderJSON(segments)
	default:
		return "", fmt.Errorf("unknown export format %q (want lrc, ass or json)", format)
	}
}

// RenderLRC writes placed segments as standard LRC lines. LRC carries only
// start times; styles and end times are dropped by the format.
func RenderLRC(segments []types.LyricSegment, globalOffset float64) string {
	var b strings.Builder
	for _, seg := range segments {
		if !seg.Placed() {
			continue
		}
		at := seg.StartTime + globalOffset
		if at < 0 {
			at = 0
		}
		b.WriteString("[")
		b.WriteString(lrcTime(at))
		b.WriteString("]")
		b.WriteString(strings.ReplaceAll(seg.Text, "\n", " "))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderJSON is the lossless form: the full segment list, styles included.
func RenderJSON(segments []types.LyricSegment) (string, error) {
	b, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal segments: %w", err)
	}
	return string(b) + "\n", nil
}

func lrcTime(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%02d", m, s, cs)
}
