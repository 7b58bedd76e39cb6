package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

// RenderASS writes the placed timeline as an ASS file for previewing outside
// the app. One dialogue style per screen position; per-line color and size
// ride as inline override tags. Background effects have no ASS equivalent
// and are listed in a comment header so nothing silently disappears.
func RenderASS(segments []types.LyricSegment, globalOffset float64) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, seg := range segments {
		if !seg.Placed() {
			continue
		}
		start := seg.StartTime + globalOffset
		end := seg.EndTime + globalOffset
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}

		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(start))
		b.WriteString(",")
		b.WriteString(assTime(end))
		b.WriteString(",")
		b.WriteString(styleName(seg.Style.Position))
		b.WriteString(",,0,0,0,,")
		b.WriteString(inlineTags(seg.Style))
		b.WriteString(sanitizeASS(seg.Text))
		if set := styles.EffectiveEffects(seg.Style); len(set) > 0 {
			b.WriteString(fmt.Sprintf(" {effects: %s}", joinEffects(set)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var assFontSizes = map[types.FontSize]int{
	styles.SizeSM:  36,
	styles.SizeMD:  48,
	styles.SizeLG:  60,
	styles.SizeXL:  72,
	styles.Size2XL: 90,
	styles.Size4XL: 120,
	styles.Size6XL: 160,
}

func inlineTags(st types.LyricStyle) string {
	var b strings.Builder
	if size, ok := assFontSizes[st.FontSize]; ok && st.FontSize != styles.Size4XL {
		fmt.Fprintf(&b, "{\\fs%d}", size)
	}
	if c, ok := assColor(st.Color); ok {
		fmt.Fprintf(&b, "{\\c%s}", c)
	}
	return b.String()
}

func styleName(p types.Position) string {
	switch p {
	case styles.PositionTop:
		return "Top"
	case styles.PositionBottom:
		return "Bottom"
	default:
		return "Center"
	}
}

// assColor converts "#RRGGBB" to ASS "&HBBGGRR&". Anything else is skipped
// rather than guessed.
func assColor(hex string) (string, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "", false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	return "&H" + strings.ToUpper(hex[4:6]+hex[2:4]+hex[0:2]) + "&", true
}

func joinEffects(set map[types.BackgroundEffect]struct{}) string {
	names := make([]string, 0, len(set))
	for e := range set {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
Title: lyrstage export
ScriptType: v4.00+
PlayResX: 1920
PlayResY: 1080
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Top, Inter, 120, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,8, 80,80,85,1
Style: Center, Inter, 120, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,5, 80,80,85,1
Style: Bottom, Inter, 120, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,85,1
`)
}

func assTime(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", "\\N")
	return strings.TrimSpace(s)
}
