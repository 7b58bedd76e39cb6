package styles

import "github.com/ksenko/lyrstage/internal/types"

// Named text sizes, smallest to largest. Presentation owns the
// length-based auto-downscale; the core only validates membership.
const (
	SizeSM  types.FontSize = "sm"
	SizeMD  types.FontSize = "md"
	SizeLG  types.FontSize = "lg"
	SizeXL  types.FontSize = "xl"
	Size2XL types.FontSize = "2xl"
	Size4XL types.FontSize = "4xl"
	Size6XL types.FontSize = "6xl"
)

// FontSizes is the ordered closed set.
var FontSizes = []types.FontSize{SizeSM, SizeMD, SizeLG, SizeXL, Size2XL, Size4XL, Size6XL}

const (
	PositionTop    types.Position = "top"
	PositionCenter types.Position = "center"
	PositionBottom types.Position = "bottom"
)

const (
	FontDisplay     types.FontFamily = "display"
	FontSerif       types.FontFamily = "serif"
	FontMono        types.FontFamily = "mono"
	FontHandwritten types.FontFamily = "handwritten"
	FontRounded     types.FontFamily = "rounded"
	FontCondensed   types.FontFamily = "condensed"
	FontSlab        types.FontFamily = "slab"
	FontScript      types.FontFamily = "script"
	FontPixel       types.FontFamily = "pixel"
	FontGothic      types.FontFamily = "gothic"
	FontStencil     types.FontFamily = "stencil"
	FontTypewriter  types.FontFamily = "typewriter"
	FontBrush       types.FontFamily = "brush"
	FontOutline     types.FontFamily = "outline"
	FontMarker      types.FontFamily = "marker"
)

var fontFamilies = map[types.FontFamily]struct{}{
	FontDisplay: {}, FontSerif: {}, FontMono: {}, FontHandwritten: {}, FontRounded: {},
	FontCondensed: {}, FontSlab: {}, FontScript: {}, FontPixel: {}, FontGothic: {},
	FontStencil: {}, FontTypewriter: {}, FontBrush: {}, FontOutline: {}, FontMarker: {},
}

func ValidFontSize(s types.FontSize) bool {
	for _, fs := range FontSizes {
		if fs == s {
			return true
		}
	}
	return false
}

func ParseFontSize(s string) types.FontSize {
	if ValidFontSize(types.FontSize(s)) {
		return types.FontSize(s)
	}
	return Size4XL
}

func ParsePosition(s string) types.Position {
	switch types.Position(s) {
	case PositionTop, PositionCenter, PositionBottom:
		return types.Position(s)
	}
	return PositionCenter
}

func ParseFontFamily(s string) types.FontFamily {
	if _, ok := fontFamilies[types.FontFamily(s)]; ok {
		return types.FontFamily(s)
	}
	return FontDisplay
}
