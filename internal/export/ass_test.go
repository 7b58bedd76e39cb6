package export

import (
	"strings"
	"testing"

	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/types"
)

func TestRenderASS(t *testing.T) {
	t.Parallel()

	top := placed("a", "headline", 1, 4)
	top.Style.Position = styles.PositionTop
	top.Style.FontSize = styles.Size2XL
	top.Style.Color = "#FF0066"
	top.Style.Effects = []types.BackgroundEffect{styles.EffectShake, styles.EffectBlur}

	pending := types.LyricSegment{ID: "p", Text: "queued", StartTime: types.PendingTime, EndTime: types.PendingTime}

	out := RenderASS([]types.LyricSegment{top, pending}, 0)

	if !strings.Contains(out, "[Script Info]") || !strings.Contains(out, "[Events]") {
		t.Fatalf("missing ASS structure:\n%s", out)
	}
	if !strings.Contains(out, "Dialogue: 0,0:00:01.00,0:00:04.00,Top,") {
		t.Fatalf("missing dialogue line:\n%s", out)
	}
	if !strings.Contains(out, "{\\fs90}") {
		t.Fatalf("expected font size override tag:\n%s", out)
	}
	if !strings.Contains(out, "{\\c&H6600FF&}") {
		t.Fatalf("expected BGR color tag:\n%s", out)
	}
	if !strings.Contains(out, "{effects: blur,shake}") {
		t.Fatalf("expected sorted effects comment:\n%s", out)
	}
	if strings.Contains(out, "queued") {
		t.Fatalf("pending segments must not be exported:\n%s", out)
	}
}

func TestRenderASS_OffsetClipsAtZero(t *testing.T) {
	t.Parallel()

	segs := []types.LyricSegment{
		placed("a", "gone", 0, 1),
		placed("b", "clipped", 1, 4),
	}
	out := RenderASS(segs, -2)

	if strings.Contains(out, "gone") {
		t.Fatalf("segments ending before zero must be dropped:\n%s", out)
	}
	if !strings.Contains(out, "Dialogue: 0,0:00:00.00,0:00:02.00,Center,") {
		t.Fatalf("expected start clamped to zero:\n%s", out)
	}
}

func TestSanitizeASS(t *testing.T) {
	t.Parallel()

	got := sanitizeASS("brace {override}\nback\\slash")
	if got != "brace (override)\\Nback\\\\slash" {
		t.Fatalf("sanitizeASS = %q", got)
	}
}

func TestAssColor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "#FFFFFF", want: "&HFFFFFF&", ok: true},
		{in: "#FF0066", want: "&H6600FF&", ok: true},
		{in: " #a1b2c3 ", want: "&HC3B2A1&", ok: true},
		{in: "#FFF", ok: false},
		{in: "red", ok: false},
		{in: "#GGGGGG", ok: false},
	}
	for _, tc := range cases {
		got, ok := assColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("assColor(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAssTime(t *testing.T) {
	t.Parallel()

	if got := assTime(3725.25); got != "1:02:05.25" {
		t.Fatalf("assTime = %q", got)
	}
	if got := assTime(-3); got != "0:00:00.00" {
		t.Fatalf("negative time must clamp, got %q", got)
	}
}
