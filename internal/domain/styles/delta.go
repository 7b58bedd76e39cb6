package styles

import "github.com/ksenko/lyrstage/internal/types"

// DefaultColor is plain white, readable over almost any backdrop.
const DefaultColor = "#FFFFFF"

// Default returns the style a freshly placed segment gets: a slide-up
// entrance, centered, in the headline font at the largest single-line size.
func Default() types.LyricStyle {
	return types.LyricStyle{
		Animation:        AnimSlideUp,
		Color:            DefaultColor,
		FontSize:         Size4XL,
		Position:         PositionCenter,
		FontFamily:       FontDisplay,
		BackgroundEffect: EffectNone,
	}
}

// Delta is a partial style update. Nil pointer fields are "leave unchanged";
// a nil Effects slice is "leave unchanged" while an empty non-nil slice
// clears the set.
type Delta struct {
	Animation        *types.AnimationType
	Color            *string
	FontSize         *types.FontSize
	Position         *types.Position
	FontFamily       *types.FontFamily
	Vertical         *bool
	Effects          []types.BackgroundEffect
	BackgroundEffect *types.BackgroundEffect
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Animation == nil && d.Color == nil && d.FontSize == nil &&
		d.Position == nil && d.FontFamily == nil && d.Vertical == nil &&
		d.Effects == nil && d.BackgroundEffect == nil
}

// Apply shallow-merges d into st. Writing Effects also resets the legacy
// BackgroundEffect to none so the same effect is never applied twice.
func Apply(st types.LyricStyle, d Delta) types.LyricStyle {
	if d.Animation != nil {
		st.Animation = *d.Animation
	}
	if d.Color != nil {
		st.Color = *d.Color
	}
	if d.FontSize != nil {
		st.FontSize = *d.FontSize
	}
	if d.Position != nil {
		st.Position = *d.Position
	}
	if d.FontFamily != nil {
		st.FontFamily = *d.FontFamily
	}
	if d.Vertical != nil {
		st.Vertical = *d.Vertical
	}
	if d.Effects != nil {
		st.Effects = append([]types.BackgroundEffect(nil), d.Effects...)
		st.BackgroundEffect = EffectNone
	} else if d.BackgroundEffect != nil {
		st.BackgroundEffect = *d.BackgroundEffect
	}
	return st
}
